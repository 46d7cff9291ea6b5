package services

import (
	"strings"

	"sutradhar/internal/domain"
	"sutradhar/internal/repos"
)

type CatalogService struct {
	Prods *repos.ProductRepo
}

func NewCatalogService(prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Prods: prods}
}

// Browse returns published products newest-first, filtered by a free-text term
// and a tag. The term matches title or shop name, case-insensitive substring;
// the tag matches any product tag the same way. Empty term and tag "all" (or
// empty) disable their filter.
func (s *CatalogService) Browse(term, tag string) ([]domain.CatalogProduct, error) {
	products, err := s.Prods.ListPublished()
	if err != nil {
		return nil, err
	}

	term = strings.ToLower(strings.TrimSpace(term))
	tag = strings.ToLower(strings.TrimSpace(tag))
	if term == "" && (tag == "" || tag == "all") {
		return products, nil
	}

	out := make([]domain.CatalogProduct, 0, len(products))
	for _, p := range products {
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Title), term) &&
			!strings.Contains(strings.ToLower(p.Seller.ShopName), term) {
			continue
		}
		if tag != "" && tag != "all" && !hasTag(p.Tags, tag) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if strings.Contains(strings.ToLower(t), tag) {
			return true
		}
	}
	return false
}

func (s *CatalogService) GetProduct(id string) (domain.CatalogProduct, error) {
	return s.Prods.Get(id)
}
