package repos

import (
	"encoding/json"

	"github.com/jmoiron/sqlx"

	"sutradhar/internal/domain"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

func insertOrder(e sqlx.Execer, o *domain.Order) error {
	_, err := e.Exec(`
	  INSERT INTO orders
	    (id, buyer_id, seller_id, items_json, subtotal, discount, shipping, tax, total,
	     shipping_address, payment_method, payment_status, status, custom_request_id, created_at)
	  VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
	`, o.ID, o.BuyerID, o.SellerID, o.ItemsJSON, o.Subtotal, o.Discount, o.Shipping, o.Tax,
		o.Total, o.ShippingAddress, o.PaymentMethod, o.PaymentStatus, o.Status, o.CustomRequestID)
	return err
}

// Create inserts a single order row (used by the custom-request accept flow).
func (r *OrderRepo) Create(o *domain.Order) error {
	return insertOrder(r.db, o)
}

// PlaceCheckout commits a whole checkout atomically: one order row per seller,
// the buyer's cart cleared, and the earn ledger entry appended with the profile
// balance bumped to match. Either everything lands or nothing does.
func (r *OrderRepo) PlaceCheckout(orders []domain.Order, buyerID string, earned *domain.PointsEntry) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for i := range orders {
		if err := insertOrder(tx, &orders[i]); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(`DELETE FROM carts WHERE user_id=?`, buyerID); err != nil {
		return err
	}

	if earned != nil {
		if err := appendLedger(tx, earned); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func decodeItems(o *domain.Order) {
	_ = json.Unmarshal([]byte(o.ItemsJSON), &o.Items)
}

const orderSelect = `
  SELECT id, buyer_id, seller_id, items_json, subtotal, discount, shipping, tax, total,
         shipping_address, payment_method, payment_status, status, custom_request_id,
         tracking_number, created_at, COALESCE(updated_at,'') AS updated_at
  FROM orders`

func (r *OrderRepo) Get(id string) (domain.Order, error) {
	var o domain.Order
	if err := r.db.Get(&o, orderSelect+` WHERE id=?`, id); err != nil {
		return domain.Order{}, err
	}
	decodeItems(&o)
	return o, nil
}

func (r *OrderRepo) ListByBuyer(buyerID string) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.Select(&out, orderSelect+`
	  WHERE buyer_id=? ORDER BY datetime(created_at) DESC, id DESC`, buyerID)
	if err != nil {
		return nil, err
	}
	for i := range out {
		decodeItems(&out[i])
	}
	return out, nil
}

func (r *OrderRepo) ListBySeller(sellerID string) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.Select(&out, orderSelect+`
	  WHERE seller_id=? ORDER BY datetime(created_at) DESC, id DESC`, sellerID)
	if err != nil {
		return nil, err
	}
	for i := range out {
		decodeItems(&out[i])
	}
	return out, nil
}

func (r *OrderRepo) UpdateStatus(id, status string) error {
	_, err := r.db.Exec(`UPDATE orders SET status=?, updated_at=CURRENT_TIMESTAMP WHERE id=?`, status, id)
	return err
}

// CountByBuyer supports first-order-only offers.
func (r *OrderRepo) CountByBuyer(buyerID string) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM orders WHERE buyer_id=?`, buyerID)
	return n, err
}
