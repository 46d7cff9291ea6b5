package repos

import (
	"github.com/jmoiron/sqlx"

	"sutradhar/internal/domain"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT id,email,password_hash FROM users WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(id string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT id,email,password_hash FROM users WHERE id=?`, id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateWithProfile inserts the user row and its profile together.
func (r *UserRepo) CreateWithProfile(u *domain.User, p *domain.Profile) error {
	tx, err := r.DB.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`INSERT INTO users(id,email,password_hash) VALUES(?,?,?)`,
		u.ID, u.Email, u.Hash); err != nil {
		return err
	}
	if _, err := tx.Exec(`
	  INSERT INTO profiles(user_id,display_name,role,points,kyc_status,language)
	  VALUES(?,?,?,?,?,?)
	`, p.UserID, p.DisplayName, p.Role, p.Points, p.KYCStatus, p.Language); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *UserRepo) Profile(userID string) (*domain.Profile, error) {
	var p domain.Profile
	err := r.DB.Get(&p, `
	  SELECT user_id,display_name,role,points,kyc_status,language,created_at,
	         COALESCE(updated_at,'') AS updated_at
	  FROM profiles WHERE user_id=?`, userID)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *UserRepo) UpdateRole(userID, role string) error {
	_, err := r.DB.Exec(`UPDATE profiles SET role=?, updated_at=CURRENT_TIMESTAMP WHERE user_id=?`, role, userID)
	return err
}

func (r *UserRepo) BindSession(sid, userID string) error {
	_, err := r.DB.Exec(`INSERT INTO sessions(id,user_id,last_seen)
                          VALUES(?,?,CURRENT_TIMESTAMP)
                          ON CONFLICT(id) DO UPDATE SET user_id=excluded.user_id,last_seen=CURRENT_TIMESTAMP`, sid, userID)
	return err
}

func (r *UserRepo) SessionUser(sid string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `
      SELECT u.id,u.email,u.password_hash
      FROM sessions s
      JOIN users u ON u.id=s.user_id
      WHERE s.id=?`, sid)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) UnbindSession(sid string) error {
	_, err := r.DB.Exec(`UPDATE sessions SET user_id=NULL,last_seen=CURRENT_TIMESTAMP WHERE id=?`, sid)
	return err
}
