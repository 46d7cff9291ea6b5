package services

import (
	"encoding/json"

	"sutradhar/internal/repos"
)

type WishlistService struct {
	Repo *repos.WishlistRepo
}

func NewWishlistService(r *repos.WishlistRepo) *WishlistService { return &WishlistService{Repo: r} }

type WishlistItem struct {
	repos.WishlistRow
	Photos []string `json:"photos"`
}

// Add is idempotent per (user, product); re-adding is a silent success.
func (s *WishlistService) Add(userID, productID string) error {
	return s.Repo.Add(userID, productID)
}

func (s *WishlistService) Remove(userID, productID string) error {
	return s.Repo.Remove(userID, productID)
}

func (s *WishlistService) List(userID string) ([]WishlistItem, error) {
	rows, err := s.Repo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	out := make([]WishlistItem, 0, len(rows))
	for _, r := range rows {
		item := WishlistItem{WishlistRow: r}
		_ = json.Unmarshal([]byte(r.PhotosJSON), &item.Photos)
		out = append(out, item)
	}
	return out, nil
}

func (s *WishlistService) Contains(userID, productID string) (bool, error) {
	n, err := s.Repo.Count(userID, productID)
	return n > 0, err
}
