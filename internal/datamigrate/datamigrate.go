// Package datamigrate normalizes stored product records at startup. Each
// migration is a named, idempotent transform: it inspects a record and
// reports whether it changed it, so a clean catalog produces zero writes.
package datamigrate

import (
	"context"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/domain"
	productrepo "github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/repository/product"
)

// Migration rewrites a single record in place, returning true when the
// record changed. Transforms must be idempotent.
type Migration struct {
	Name  string
	Apply func(p *domain.Product, now time.Time) bool
}

// Runner applies the registered migrations to every stored record.
type Runner struct {
	repo       productrepo.Repository
	migrations []Migration
	logger     *log.Logger
	now        func() time.Time
}

func NewRunner(repo productrepo.Repository, logger *log.Logger, migrations ...Migration) *Runner {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if len(migrations) == 0 {
		migrations = All()
	}
	return &Runner{repo: repo, migrations: migrations, logger: logger, now: time.Now}
}

// Run applies all migrations and returns the number of records written.
// Re-running over an already-migrated catalog performs zero writes.
func (r *Runner) Run(ctx context.Context) (int, error) {
	products, err := r.repo.GetAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("read catalog: %w", err)
	}

	writes := 0
	for i := range products {
		changed := false
		for _, m := range r.migrations {
			if m.Apply(&products[i], r.now().UTC()) {
				r.logger.Printf("datamigrate: %s rewrote id=%s", m.Name, products[i].ID)
				changed = true
			}
		}
		if !changed {
			continue
		}
		if err := r.repo.Put(ctx, products[i]); err != nil {
			return writes, fmt.Errorf("write migrated record %s: %w", products[i].ID, err)
		}
		writes++
	}
	if writes > 0 {
		r.logger.Printf("datamigrate: %d records rewritten", writes)
	}
	return writes, nil
}

// All returns the migrations shipped with the catalog.
func All() []Migration {
	return []Migration{HeadboardNames()}
}

// HeadboardNames rewrites the display name of legacy-shaped records — those
// whose image filename still follows the exported WhatsApp naming — to the
// canonical "Cabeceira {n}" form, with n parsed from the label by stripping
// leading zeros. Records whose label does not parse to a positive integer
// are skipped. Only name and updatedAt are touched.
func HeadboardNames() Migration {
	return Migration{
		Name: "headboard-names",
		Apply: func(p *domain.Product, now time.Time) bool {
			if !strings.HasPrefix(p.ImageFilename(), "WhatsApp Image") {
				return false
			}
			num, err := strconv.Atoi(strings.TrimLeft(p.Label, "0"))
			if err != nil || num <= 0 {
				return false
			}
			desired := fmt.Sprintf("Cabeceira %d", num)
			if p.Name == desired {
				return false
			}
			p.Name = desired
			p.UpdatedAt = now
			return true
		},
	}
}
