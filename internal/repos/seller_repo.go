package repos

import (
	"github.com/jmoiron/sqlx"

	"sutradhar/internal/domain"
)

type SellerRepo struct{ db *sqlx.DB }

func NewSellerRepo(db *sqlx.DB) *SellerRepo { return &SellerRepo{db: db} }

const sellerSelect = `
  SELECT id, user_id, shop_name, region, bio, rating, verified_badge,
         eco_badge, cultural_badge, total_sales, created_at
  FROM sellers`

func (r *SellerRepo) Get(id string) (domain.Seller, error) {
	var s domain.Seller
	err := r.db.Get(&s, sellerSelect+` WHERE id=?`, id)
	return s, err
}

// ByUser resolves the seller record backing a user account.
func (r *SellerRepo) ByUser(userID string) (domain.Seller, error) {
	var s domain.Seller
	err := r.db.Get(&s, sellerSelect+` WHERE user_id=?`, userID)
	return s, err
}

func (r *SellerRepo) Create(s *domain.Seller) error {
	_, err := r.db.Exec(`
	  INSERT INTO sellers(id,user_id,shop_name,region,bio,created_at)
	  VALUES(?,?,?,?,?,CURRENT_TIMESTAMP)
	`, s.ID, s.UserID, s.ShopName, s.Region, s.Bio)
	return err
}
