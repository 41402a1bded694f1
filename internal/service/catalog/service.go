package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/domain"
	"github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/id"
	productrepo "github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/repository/product"
)

// Service owns product writes: it applies timestamp rules and field defaults
// before records reach the store.
type Service struct {
	repo productrepo.Repository
	now  func() time.Time
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// SaveInput carries an admin form submission. A non-empty ID edits the
// existing record; an empty ID creates a new one.
type SaveInput struct {
	ID               string   `json:"id"`
	Label            string   `json:"label"`
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	Price            float64  `json:"price"`
	SellerPhone      string   `json:"seller_phone"`
	WhatsAppTemplate string   `json:"whatsapp_template"`
	ImageURL         string   `json:"image_url"`
	Tags             []string `json:"tags"`
}

// List returns the products matching the criteria, view-ready.
func (s *Service) List(ctx context.Context, c Criteria) ([]domain.Product, error) {
	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return Query(products, c), nil
}

func (s *Service) Get(ctx context.Context, productID string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, productID)
}

// Save upserts a product. Edits keep the record's createdAt and availability;
// updatedAt is refreshed on every write.
func (s *Service) Save(ctx context.Context, in SaveInput) (*domain.Product, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, errors.New("name required")
	}

	now := s.now().UTC()
	p := domain.Product{
		ID:               strings.TrimSpace(in.ID),
		Label:            strings.TrimSpace(in.Label),
		Name:             strings.TrimSpace(in.Name),
		Description:      strings.TrimSpace(in.Description),
		Price:            in.Price,
		SellerPhone:      strings.TrimSpace(in.SellerPhone),
		WhatsAppTemplate: strings.TrimSpace(in.WhatsAppTemplate),
		ImageURL:         strings.TrimSpace(in.ImageURL),
		Tags:             cleanTags(in.Tags),
		Available:        true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if p.Price < 0 {
		p.Price = 0
	}
	if p.WhatsAppTemplate == "" {
		p.WhatsAppTemplate = domain.DefaultWhatsAppTemplate
	}

	if p.ID == "" {
		p.ID = id.New()
	} else if existing, err := s.repo.GetByID(ctx, p.ID); err == nil {
		p.CreatedAt = existing.CreatedAt
		p.Available = existing.Available
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	if err := s.repo.Put(ctx, p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Service) Delete(ctx context.Context, productID string) error {
	return s.repo.Delete(ctx, productID)
}

// ToggleAvailability flips a product between available and suspended.
func (s *Service) ToggleAvailability(ctx context.Context, productID string) (*domain.Product, error) {
	p, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	p.Available = !p.Available
	p.UpdatedAt = s.now().UTC()
	if err := s.repo.Put(ctx, *p); err != nil {
		return nil, err
	}
	return p, nil
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
