package repos

import (
	"github.com/jmoiron/sqlx"

	"sutradhar/internal/domain"
)

type OfferRepo struct{ db *sqlx.DB }

func NewOfferRepo(db *sqlx.DB) *OfferRepo { return &OfferRepo{db: db} }

const offerSelect = `
  SELECT id, code, type, value, min_cart_amount, first_order_only,
         expires_at, active, seller_id, created_at
  FROM offers`

// ByCode looks up an active offer by exact code. Callers upper-case the code
// before the lookup.
func (r *OfferRepo) ByCode(code string) (domain.Offer, error) {
	var o domain.Offer
	err := r.db.Get(&o, offerSelect+` WHERE code=? AND active=1`, code)
	return o, err
}

func (r *OfferRepo) ListActive() ([]domain.Offer, error) {
	out := []domain.Offer{}
	err := r.db.Select(&out, offerSelect+` WHERE active=1 ORDER BY created_at DESC, id DESC`)
	return out, err
}
