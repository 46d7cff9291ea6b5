package services

import (
	"encoding/json"
	"errors"

	"sutradhar/internal/repos"
)

type CartService struct {
	Carts *repos.CartRepo
	Prods *repos.ProductRepo
}

func NewCartService(carts *repos.CartRepo, prods *repos.ProductRepo) *CartService {
	return &CartService{Carts: carts, Prods: prods}
}

type CartLineItem struct {
	repos.CartLineView
	Photos []string `json:"photos"`
}

type CartView struct {
	Lines       []CartLineItem `json:"lines"`
	TotalAmount float64        `json:"total_amount"`
	ItemCount   int            `json:"item_count"`
}

// View returns the cart with its derived totals. An empty userID yields an
// empty cart, not an error.
func (s *CartService) View(userID string) (CartView, error) {
	cv := CartView{Lines: []CartLineItem{}}
	if userID == "" {
		return cv, nil
	}
	lines, err := s.Carts.ListByUser(userID)
	if err != nil {
		return CartView{}, err
	}
	for _, l := range lines {
		item := CartLineItem{CartLineView: l}
		_ = json.Unmarshal([]byte(l.PhotosJSON), &item.Photos)
		cv.Lines = append(cv.Lines, item)
		cv.TotalAmount += l.PriceAtAdd * float64(l.Quantity)
		cv.ItemCount += l.Quantity
	}
	return cv, nil
}

// Add upserts a line, freezing price_at_add from the current product price.
func (s *CartService) Add(userID, productID string, qty int) error {
	if qty < 1 {
		qty = 1
	}
	p, err := s.Prods.Get(productID)
	if err != nil {
		return err
	}
	if !p.Published {
		return errors.New("product not available")
	}
	return s.Carts.Upsert(userID, productID, qty, p.Price)
}

// UpdateQuantity sets a line's quantity; zero or below delegates to removal.
func (s *CartService) UpdateQuantity(userID, lineID string, qty int) error {
	if qty <= 0 {
		return s.Carts.Remove(userID, lineID)
	}
	return s.Carts.UpdateQuantity(userID, lineID, qty)
}

func (s *CartService) Remove(userID, lineID string) error {
	return s.Carts.Remove(userID, lineID)
}

func (s *CartService) Clear(userID string) error {
	if userID == "" {
		return nil
	}
	return s.Carts.Clear(userID)
}
