// Package seed populates an empty catalog with the starter headboard
// products. Seeding a non-empty store is a no-op, so existing data is never
// overwritten.
package seed

import (
	"context"
	"fmt"
	"io"
	"log"
	"strconv"
	"time"

	"github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/domain"
	"github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/id"
	productrepo "github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/repository/product"
)

var seedImages = []string{
	"WhatsApp Image 2025-11-19 at 17.57.13.jpeg",
	"WhatsApp Image 2025-11-19 at 17.57.14.jpeg",
	"WhatsApp Image 2025-11-19 at 17.57.15.jpeg",
	"WhatsApp Image 2025-11-19 at 17.57.16 (1).jpeg",
	"WhatsApp Image 2025-11-19 at 17.57.16.jpeg",
	"WhatsApp Image 2025-11-19 at 17.57.17 (1).jpeg",
	"WhatsApp Image 2025-11-19 at 17.57.17.jpeg",
}

const (
	seedDescription = "Cabeceira de alta qualidade, perfeita para complementar seu mobiliário."
	basePrice       = 399
	priceStep       = 50
)

// Apply seeds the catalog when it is empty and returns the number of
// inserted products. Labels are zero-padded 4-digit sequentials starting at
// the lowest unused number; candidates whose image filename already exists
// among current records are skipped.
func Apply(ctx context.Context, repo productrepo.Repository, logger *log.Logger) (int, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	existing, err := repo.GetAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("read catalog: %w", err)
	}
	if len(existing) > 0 {
		logger.Printf("seed: catalog has %d products, nothing to do", len(existing))
		return 0, nil
	}

	existingImages := make(map[string]struct{}, len(existing))
	usedLabels := make(map[string]struct{}, len(existing))
	for _, p := range existing {
		existingImages[p.ImageFilename()] = struct{}{}
		usedLabels[p.Label] = struct{}{}
	}
	labels := labelSequence(usedLabels)

	inserted := 0
	for i, fname := range seedImages {
		if _, ok := existingImages[fname]; ok {
			continue
		}
		label := labels()
		num, _ := strconv.Atoi(label)
		now := time.Now().UTC()
		p := domain.Product{
			ID:               id.New(),
			Label:            label,
			Name:             fmt.Sprintf("Cabeceira %d", num),
			Description:      seedDescription,
			Price:            float64(basePrice + i*priceStep),
			WhatsAppTemplate: domain.DefaultWhatsAppTemplate,
			ImageURL:         "img/produtos/" + fname,
			Tags:             []string{"cabeceira", "móvel", "quarto"},
			Available:        true,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if err := repo.Put(ctx, p); err != nil {
			return inserted, fmt.Errorf("insert seed product %s: %w", label, err)
		}
		inserted++
	}

	logger.Printf("seed: inserted %d products", inserted)
	return inserted, nil
}

// labelSequence yields zero-padded 4-digit labels, skipping any already in
// use. Relevant mainly for partial re-seeds.
func labelSequence(used map[string]struct{}) func() string {
	next := 1
	return func() string {
		for {
			label := fmt.Sprintf("%04d", next)
			next++
			if _, taken := used[label]; !taken {
				used[label] = struct{}{}
				return label
			}
		}
	}
}
