package domain

type User struct {
	ID    string `db:"id" json:"id"`
	Email string `db:"email" json:"email"`
	Hash  string `db:"password_hash" json:"-"`
}

// Profile carries role, the denormalized point balance and KYC state for a
// user. Points is a read model of the points ledger; every ledger append
// updates it in the same transaction.
type Profile struct {
	UserID      string `db:"user_id" json:"user_id"`
	DisplayName string `db:"display_name" json:"display_name"`
	Role        string `db:"role" json:"role"` // buyer | seller | admin
	Points      int    `db:"points" json:"points"`
	KYCStatus   string `db:"kyc_status" json:"kyc_status"`
	Language    string `db:"language" json:"language"`
	CreatedAt   string `db:"created_at" json:"created_at"`
	UpdatedAt   string `db:"updated_at" json:"updated_at,omitempty"`
}

// Loyalty tiers by point balance.
const (
	TierBronze = "Bronze"
	TierSilver = "Silver"
	TierGold   = "Gold"
)

// TierFor maps a point balance to its loyalty tier: <500 Bronze, 500-999
// Silver, >=1000 Gold.
func TierFor(points int) string {
	switch {
	case points >= 1000:
		return TierGold
	case points >= 500:
		return TierSilver
	default:
		return TierBronze
	}
}

// Session is the current authenticated principal, resolved from the sid
// cookie. Tier is derived from the profile balance at read time.
type Session struct {
	User    User    `json:"user"`
	Profile Profile `json:"profile"`
	Tier    string  `json:"tier"`
}
