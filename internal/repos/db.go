package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed baseline marketplace data if the DB is empty (idempotent)
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Users & sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);

-- Profiles: role, denormalized point balance, KYC
CREATE TABLE IF NOT EXISTS profiles(
  user_id TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
  display_name TEXT NOT NULL DEFAULT '',
  role TEXT NOT NULL DEFAULT 'buyer' CHECK (role IN ('buyer','seller','admin')),
  points INTEGER NOT NULL DEFAULT 0,
  kyc_status TEXT NOT NULL DEFAULT 'pending',
  language TEXT NOT NULL DEFAULT 'en',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);

-- Sellers
CREATE TABLE IF NOT EXISTS sellers(
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  shop_name TEXT NOT NULL,
  region TEXT NOT NULL DEFAULT '',
  bio TEXT NOT NULL DEFAULT '',
  rating NUMERIC NOT NULL DEFAULT 0,
  verified_badge INTEGER NOT NULL DEFAULT 0,
  eco_badge INTEGER NOT NULL DEFAULT 0,
  cultural_badge INTEGER NOT NULL DEFAULT 0,
  total_sales INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_sellers_user ON sellers(user_id);

-- Products
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  seller_id TEXT NOT NULL REFERENCES sellers(id) ON DELETE CASCADE,
  title TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  price NUMERIC NOT NULL CHECK (price >= 0),
  stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
  photos_json TEXT NOT NULL DEFAULT '[]',
  tags_json TEXT NOT NULL DEFAULT '[]',
  eco_badge INTEGER NOT NULL DEFAULT 0,
  cultural_badge INTEGER NOT NULL DEFAULT 0,
  story_text TEXT NOT NULL DEFAULT '',
  story_audio_url TEXT NOT NULL DEFAULT '',
  story_language TEXT NOT NULL DEFAULT 'en',
  published INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_seller    ON products(seller_id);
CREATE INDEX IF NOT EXISTS idx_products_published ON products(published);
CREATE INDEX IF NOT EXISTS idx_products_created   ON products(created_at);

-- Carts: one row per (user, product), price snapshot at insertion
CREATE TABLE IF NOT EXISTS carts(
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE RESTRICT,
  quantity INTEGER NOT NULL CHECK (quantity >= 1),
  price_at_add NUMERIC NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(user_id, product_id)
);
CREATE INDEX IF NOT EXISTS idx_carts_user ON carts(user_id);

-- Wishlists
CREATE TABLE IF NOT EXISTS wishlists(
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE RESTRICT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(user_id, product_id)
);
CREATE INDEX IF NOT EXISTS idx_wishlists_user ON wishlists(user_id);

-- Orders: one row per (buyer, seller) pair from a checkout; items snapshot
CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  buyer_id TEXT NOT NULL,
  seller_id TEXT NOT NULL REFERENCES sellers(id),
  items_json TEXT NOT NULL,
  subtotal NUMERIC NOT NULL,
  discount NUMERIC NOT NULL DEFAULT 0,
  shipping NUMERIC NOT NULL DEFAULT 0,
  tax NUMERIC NOT NULL DEFAULT 0,
  total NUMERIC NOT NULL,
  shipping_address TEXT NOT NULL DEFAULT '',
  payment_method TEXT NOT NULL DEFAULT 'card',
  payment_status TEXT NOT NULL DEFAULT 'pending',
  status TEXT NOT NULL DEFAULT 'placed',
  custom_request_id TEXT NOT NULL DEFAULT '',
  tracking_number TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_orders_buyer   ON orders(buyer_id);
CREATE INDEX IF NOT EXISTS idx_orders_seller  ON orders(seller_id);
CREATE INDEX IF NOT EXISTS idx_orders_created ON orders(created_at);

-- Points ledger: append-only
CREATE TABLE IF NOT EXISTS points_ledger(
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  type TEXT NOT NULL CHECK (type IN ('earn','redeem','adjust')),
  points INTEGER NOT NULL,
  note TEXT NOT NULL DEFAULT '',
  order_id TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_ledger_user ON points_ledger(user_id);

-- Offers (promo codes)
CREATE TABLE IF NOT EXISTS offers(
  id TEXT PRIMARY KEY,
  code TEXT NOT NULL UNIQUE,
  type TEXT NOT NULL CHECK (type IN ('percent','fixed')),
  value NUMERIC NOT NULL,
  min_cart_amount NUMERIC NOT NULL DEFAULT 0,
  first_order_only INTEGER NOT NULL DEFAULT 0,
  expires_at TEXT NOT NULL DEFAULT '',
  active INTEGER NOT NULL DEFAULT 1,
  seller_id TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);

-- Custom order requests
CREATE TABLE IF NOT EXISTS custom_requests(
  id TEXT PRIMARY KEY,
  buyer_id TEXT NOT NULL,
  seller_id TEXT NOT NULL DEFAULT '',
  brief_text TEXT NOT NULL,
  budget NUMERIC NOT NULL DEFAULT 0,
  timeline_days INTEGER NOT NULL DEFAULT 0,
  materials TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL DEFAULT 'new',
  quote_amount NUMERIC NOT NULL DEFAULT 0,
  quote_timeline_days INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_requests_buyer  ON custom_requests(buyer_id);
CREATE INDEX IF NOT EXISTS idx_requests_seller ON custom_requests(seller_id);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM sellers`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo sellers/products/offers")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO sellers(id,user_id,shop_name,region,rating,verified_badge,cultural_badge) VALUES
	  ('sel-kanchi','u-meera','Kanchi Weaves','Tamil Nadu',4.8,1,1),
	  ('sel-blue','u-arun','Blue Pottery House','Rajasthan',4.5,1,0)`)

	tx.MustExec(`INSERT INTO products(id,seller_id,title,description,price,stock,photos_json,tags_json,cultural_badge,story_text,published) VALUES
	  ('prod-saree','sel-kanchi','Kanjivaram Silk Saree','Handwoven silk saree with zari border',4500,5,
	   '["products/prod-saree/main.jpg"]','["textile","silk","handloom"]',1,'Woven over three weeks on a family loom.',1),
	  ('prod-stole','sel-kanchi','Cotton Handloom Stole','Natural-dyed cotton stole',850,20,
	   '["products/prod-stole/main.jpg"]','["textile","cotton"]',0,'',1),
	  ('prod-vase','sel-blue','Jaipur Blue Pottery Vase','Hand-painted quartz-frit vase',1200,8,
	   '["products/prod-vase/main.jpg"]','["pottery","decor"]',1,'Glazed with the traditional cobalt recipe.',1)`)

	tx.MustExec(`INSERT INTO offers(id,code,type,value,min_cart_amount,active) VALUES
	  ('off-textile20','TEXTILE20','percent',20,0,1),
	  ('off-flat100','CRAFT100','fixed',100,1000,1)`)

	return tx.Commit()
}

// seedUsers ensures demo buyer and seller accounts exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		ID, Email, Name, Role string
	}
	users := []u{
		{"u-demo", "buyer@sutradhar.test", "Demo Buyer", "buyer"},
		{"u-meera", "meera@sutradhar.test", "Meera", "seller"},
		{"u-arun", "arun@sutradhar.test", "Arun", "seller"},
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		h, err := bcrypt.GenerateFromPassword([]byte("Passw0rd!"), 12)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(`
			INSERT INTO users(id,email,password_hash) VALUES(?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, x.ID, x.Email, string(h)); err != nil {
			return err
		}
		if _, err := tx.Exec(`
			INSERT INTO profiles(user_id,display_name,role) VALUES(?,?,?)
			ON CONFLICT(user_id) DO NOTHING
		`, x.ID, x.Name, x.Role); err != nil {
			return err
		}
	}

	return tx.Commit()
}
