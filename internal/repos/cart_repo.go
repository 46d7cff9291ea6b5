package repos

import (
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

// CartLineView is a cart row with the product snapshot the UI needs embedded.
type CartLineView struct {
	ID         string  `db:"id" json:"id"`
	UserID     string  `db:"user_id" json:"user_id"`
	ProductID  string  `db:"product_id" json:"product_id"`
	Quantity   int     `db:"quantity" json:"quantity"`
	PriceAtAdd float64 `db:"price_at_add" json:"price_at_add"`
	CreatedAt  string  `db:"created_at" json:"created_at"`
	Title      string  `db:"title" json:"title"`
	PhotosJSON string  `db:"photos_json" json:"-"`
	Stock      int     `db:"stock" json:"stock"`
	SellerID   string  `db:"seller_id" json:"seller_id"`
}

// ListByUser returns the user's cart lines with product title/photos/stock/seller,
// newest line first.
func (r *CartRepo) ListByUser(userID string) ([]CartLineView, error) {
	lines := []CartLineView{}
	err := r.db.Select(&lines, `
	  SELECT c.id, c.user_id, c.product_id, c.quantity, c.price_at_add, c.created_at,
	         p.title, p.photos_json, p.stock, p.seller_id
	  FROM carts c JOIN products p ON p.id = c.product_id
	  WHERE c.user_id = ?
	  ORDER BY c.created_at DESC, c.id DESC
	`, userID)
	return lines, err
}

// Upsert inserts a line freezing price_at_add, or adds quantity to an existing
// line for the same product. The frozen price is never overwritten.
func (r *CartRepo) Upsert(userID, productID string, qty int, price float64) error {
	_, err := r.db.Exec(`
	  INSERT INTO carts(id,user_id,product_id,quantity,price_at_add,created_at)
	  VALUES(?,?,?,?,?,CURRENT_TIMESTAMP)
	  ON CONFLICT(user_id,product_id) DO UPDATE
	  SET quantity = carts.quantity + excluded.quantity
	`, uuid.NewString(), userID, productID, qty, price)
	return err
}

// UpdateQuantity sets a line's quantity. The user_id filter keeps one user's
// line out of reach of another's session.
func (r *CartRepo) UpdateQuantity(userID, lineID string, qty int) error {
	_, err := r.db.Exec(`UPDATE carts SET quantity=? WHERE id=? AND user_id=?`, qty, lineID, userID)
	return err
}

func (r *CartRepo) Remove(userID, lineID string) error {
	_, err := r.db.Exec(`DELETE FROM carts WHERE id=? AND user_id=?`, lineID, userID)
	return err
}

func (r *CartRepo) Clear(userID string) error {
	_, err := r.db.Exec(`DELETE FROM carts WHERE user_id=?`, userID)
	return err
}
