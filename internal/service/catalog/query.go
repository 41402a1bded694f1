package catalog

import (
	"sort"
	"strings"

	"github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/domain"
)

type Availability string

const (
	AvailabilityAll  Availability = "all"
	AvailabilityOnly Availability = "available"
)

type SortKey string

const (
	SortRecent    SortKey = "recent"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
)

// Criteria is a transient view filter over the product collection.
type Criteria struct {
	Availability Availability
	Search       string
	Sort         SortKey
}

// Query filters and sorts products per the criteria. It is a pure function:
// the input slice is never mutated and ties keep their input order.
func Query(products []domain.Product, c Criteria) []domain.Product {
	list := make([]domain.Product, 0, len(products))

	search := strings.ToLower(strings.TrimSpace(c.Search))
	for _, p := range products {
		if c.Availability == AvailabilityOnly && !p.Available {
			continue
		}
		if search != "" && !matches(p, search) {
			continue
		}
		list = append(list, p)
	}

	switch c.Sort {
	case SortPriceAsc:
		sort.SliceStable(list, func(i, j int) bool { return list[i].Price < list[j].Price })
	case SortPriceDesc:
		sort.SliceStable(list, func(i, j int) bool { return list[i].Price > list[j].Price })
	default:
		// Most recent first; zero timestamps sort oldest.
		sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	}

	return list
}

func matches(p domain.Product, search string) bool {
	return strings.Contains(strings.ToLower(p.Name), search) ||
		strings.Contains(strings.ToLower(p.Label), search) ||
		strings.Contains(strings.ToLower(strings.Join(p.Tags, " ")), search)
}
