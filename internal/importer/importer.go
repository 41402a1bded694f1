// Package importer handles bulk JSON import and export of the product
// collection.
package importer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/domain"
	"github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/id"
	productrepo "github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/repository/product"
)

// JSONImporter reads a JSON array of product documents and destructively
// replaces the whole collection. Records get missing ids and creation
// timestamps backfilled and are normalized at this boundary; nothing is
// written unless the entire document is acceptable.
type JSONImporter struct {
	reader      io.Reader
	productRepo productrepo.Repository
	now         func() time.Time
}

func NewJSON(r io.Reader, repo productrepo.Repository) *JSONImporter {
	return &JSONImporter{reader: r, productRepo: repo, now: time.Now}
}

// Run parses, validates and stores the document, returning the number of
// imported products. A malformed payload is a parse failure; a well-formed
// payload that is not an array is a validation failure. Both abort before
// any write.
func (i *JSONImporter) Run(ctx context.Context) (int, error) {
	raw, err := io.ReadAll(i.reader)
	if err != nil {
		return 0, fmt.Errorf("read document: %w", err)
	}

	var probe interface{}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return 0, fmt.Errorf("decode document: %w", errors.Join(domain.ErrParse, err))
	}
	if _, ok := probe.([]interface{}); !ok {
		return 0, fmt.Errorf("%w: document must be an array of products", domain.ErrValidation)
	}

	var docs []domain.RawProduct
	if err := json.Unmarshal(raw, &docs); err != nil {
		return 0, fmt.Errorf("decode products: %w", errors.Join(domain.ErrParse, err))
	}

	now := i.now().UTC()
	products := make([]domain.Product, 0, len(docs))
	for _, doc := range docs {
		p := doc.Normalize()
		if p.ID == "" {
			p.ID = id.New()
		}
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}
		p.UpdatedAt = now
		products = append(products, p)
	}

	if err := i.productRepo.ReplaceAll(ctx, products); err != nil {
		return 0, fmt.Errorf("replace collection: %w", err)
	}
	return len(products), nil
}

// Export writes the full product collection to w as an indented JSON array,
// the same document shape Run accepts.
func Export(ctx context.Context, repo productrepo.Repository, w io.Writer) error {
	products, err := repo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("read catalog: %w", err)
	}
	if products == nil {
		products = []domain.Product{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(products); err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	return nil
}
