package repos

import (
	"github.com/jmoiron/sqlx"

	"sutradhar/internal/domain"
)

type RequestRepo struct{ db *sqlx.DB }

func NewRequestRepo(db *sqlx.DB) *RequestRepo { return &RequestRepo{db: db} }

const requestSelect = `
  SELECT id, buyer_id, seller_id, brief_text, budget, timeline_days, materials,
         status, quote_amount, quote_timeline_days, created_at,
         COALESCE(updated_at,'') AS updated_at
  FROM custom_requests`

func (r *RequestRepo) Create(cr *domain.CustomRequest) error {
	_, err := r.db.Exec(`
	  INSERT INTO custom_requests
	    (id, buyer_id, seller_id, brief_text, budget, timeline_days, materials, status, created_at)
	  VALUES (?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
	`, cr.ID, cr.BuyerID, cr.SellerID, cr.BriefText, cr.Budget, cr.TimelineDays, cr.Materials, cr.Status)
	return err
}

func (r *RequestRepo) Get(id string) (domain.CustomRequest, error) {
	var cr domain.CustomRequest
	err := r.db.Get(&cr, requestSelect+` WHERE id=?`, id)
	return cr, err
}

func (r *RequestRepo) ListByBuyer(buyerID string) ([]domain.CustomRequest, error) {
	out := []domain.CustomRequest{}
	err := r.db.Select(&out, requestSelect+`
	  WHERE buyer_id=? ORDER BY datetime(created_at) DESC, id DESC`, buyerID)
	return out, err
}

// ListOpenForSeller returns requests a seller can act on: unclaimed new briefs
// plus everything already assigned to them.
func (r *RequestRepo) ListOpenForSeller(sellerID string) ([]domain.CustomRequest, error) {
	out := []domain.CustomRequest{}
	err := r.db.Select(&out, requestSelect+`
	  WHERE (status='new' AND seller_id='') OR seller_id=?
	  ORDER BY datetime(created_at) DESC, id DESC`, sellerID)
	return out, err
}

// Quote moves a request new->quoted, claiming it for the seller. The WHERE
// clause is the transition guard: quoting anything but a fresh request is a
// no-op reported via rows affected.
func (r *RequestRepo) Quote(id, sellerID string, amount float64, timelineDays int) (bool, error) {
	res, err := r.db.Exec(`
	  UPDATE custom_requests
	  SET seller_id=?, quote_amount=?, quote_timeline_days=?, status='quoted',
	      updated_at=CURRENT_TIMESTAMP
	  WHERE id=? AND status='new' AND (seller_id='' OR seller_id=?)
	`, sellerID, amount, timelineDays, id, sellerID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// AcceptQuote atomically inserts the linked order and flips quoted->accepted.
// The status guard sits in the UPDATE so a stale accept cannot double-order.
func (r *RequestRepo) AcceptQuote(id string, order *domain.Order) (bool, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`
	  UPDATE custom_requests SET status='accepted', updated_at=CURRENT_TIMESTAMP
	  WHERE id=? AND status='quoted'
	`, id)
	if err != nil {
		return false, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return false, nil
	}

	if err := insertOrder(tx, order); err != nil {
		return false, err
	}

	return true, tx.Commit()
}

// UpdateStatus applies a seller-side fulfilment transition.
func (r *RequestRepo) UpdateStatus(id, sellerID, status string) error {
	_, err := r.db.Exec(`
	  UPDATE custom_requests SET status=?, updated_at=CURRENT_TIMESTAMP
	  WHERE id=? AND seller_id=?
	`, status, id, sellerID)
	return err
}
