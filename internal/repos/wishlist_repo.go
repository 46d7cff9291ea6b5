package repos

import (
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type WishlistRepo struct{ db *sqlx.DB }

func NewWishlistRepo(db *sqlx.DB) *WishlistRepo { return &WishlistRepo{db: db} }

// Add is idempotent: inserting an already-wishlisted product is a no-op.
func (r *WishlistRepo) Add(userID, productID string) error {
	_, err := r.db.Exec(`
	  INSERT INTO wishlists(id,user_id,product_id,created_at)
	  VALUES(?,?,?,CURRENT_TIMESTAMP)
	  ON CONFLICT(user_id,product_id) DO NOTHING
	`, uuid.NewString(), userID, productID)
	return err
}

func (r *WishlistRepo) Remove(userID, productID string) error {
	_, err := r.db.Exec(`DELETE FROM wishlists WHERE user_id=? AND product_id=?`, userID, productID)
	return err
}

type WishlistRow struct {
	ID         string  `db:"id" json:"id"`
	ProductID  string  `db:"product_id" json:"product_id"`
	Title      string  `db:"title" json:"title"`
	Price      float64 `db:"price" json:"price"`
	PhotosJSON string  `db:"photos_json" json:"-"`
	ShopName   string  `db:"shop_name" json:"shop_name"`
	CreatedAt  string  `db:"created_at" json:"created_at"`
}

func (r *WishlistRepo) ListByUser(userID string) ([]WishlistRow, error) {
	out := []WishlistRow{}
	err := r.db.Select(&out, `
	  SELECT w.id, w.product_id, p.title, p.price, p.photos_json, s.shop_name, w.created_at
	  FROM wishlists w
	  JOIN products p ON p.id = w.product_id
	  JOIN sellers s ON s.id = p.seller_id
	  WHERE w.user_id = ?
	  ORDER BY w.created_at DESC, w.id DESC
	`, userID)
	return out, err
}

func (r *WishlistRepo) Count(userID, productID string) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM wishlists WHERE user_id=? AND product_id=?`, userID, productID)
	return n, err
}
