package repos

import (
	"github.com/jmoiron/sqlx"

	"sutradhar/internal/domain"
)

type PointsRepo struct{ db *sqlx.DB }

func NewPointsRepo(db *sqlx.DB) *PointsRepo { return &PointsRepo{db: db} }

// appendLedger writes a ledger row and moves the denormalized profile balance
// by the same delta, inside the caller's transaction. The ledger is the system
// of record; the profile counter is a read model kept consistent here.
func appendLedger(tx *sqlx.Tx, e *domain.PointsEntry) error {
	if _, err := tx.Exec(`
	  INSERT INTO points_ledger(id,user_id,type,points,note,order_id,created_at)
	  VALUES(?,?,?,?,?,?,CURRENT_TIMESTAMP)
	`, e.ID, e.UserID, e.Type, e.Points, e.Note, e.OrderID); err != nil {
		return err
	}
	_, err := tx.Exec(`
	  UPDATE profiles SET points = points + ?, updated_at=CURRENT_TIMESTAMP WHERE user_id=?
	`, e.Points, e.UserID)
	return err
}

// Append records a standalone ledger transaction (redeem, manual adjust).
func (r *PointsRepo) Append(e *domain.PointsEntry) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if err := appendLedger(tx, e); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *PointsRepo) History(userID string, limit int) ([]domain.PointsEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	out := []domain.PointsEntry{}
	err := r.db.Select(&out, `
	  SELECT id,user_id,type,points,note,order_id,created_at
	  FROM points_ledger
	  WHERE user_id=?
	  ORDER BY datetime(created_at) DESC, id DESC
	  LIMIT ?
	`, userID, limit)
	return out, err
}

// Balance sums the ledger directly; used to audit the profile counter.
func (r *PointsRepo) Balance(userID string) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COALESCE(SUM(points),0) FROM points_ledger WHERE user_id=?`, userID)
	return n, err
}
