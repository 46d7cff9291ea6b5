package services

import (
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// memdb opens a fresh in-memory database with the storefront schema.
func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if _, err := db.Exec(testSchema); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

const testSchema = `
CREATE TABLE users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE sessions(
  id TEXT PRIMARY KEY,
  user_id TEXT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen TEXT
);
CREATE TABLE profiles(
  user_id TEXT PRIMARY KEY,
  display_name TEXT NOT NULL DEFAULT '',
  role TEXT NOT NULL DEFAULT 'buyer',
  points INTEGER NOT NULL DEFAULT 0,
  kyc_status TEXT NOT NULL DEFAULT 'pending',
  language TEXT NOT NULL DEFAULT 'en',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE TABLE sellers(
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
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
CREATE TABLE products(
  id TEXT PRIMARY KEY,
  seller_id TEXT NOT NULL,
  title TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  price NUMERIC NOT NULL,
  stock INTEGER NOT NULL DEFAULT 0,
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
CREATE TABLE carts(
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL CHECK (quantity >= 1),
  price_at_add NUMERIC NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(user_id, product_id)
);
CREATE TABLE wishlists(
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(user_id, product_id)
);
CREATE TABLE orders(
  id TEXT PRIMARY KEY,
  buyer_id TEXT NOT NULL,
  seller_id TEXT NOT NULL,
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
CREATE TABLE points_ledger(
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  type TEXT NOT NULL,
  points INTEGER NOT NULL,
  note TEXT NOT NULL DEFAULT '',
  order_id TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE offers(
  id TEXT PRIMARY KEY,
  code TEXT NOT NULL UNIQUE,
  type TEXT NOT NULL,
  value NUMERIC NOT NULL,
  min_cart_amount NUMERIC NOT NULL DEFAULT 0,
  first_order_only INTEGER NOT NULL DEFAULT 0,
  expires_at TEXT NOT NULL DEFAULT '',
  active INTEGER NOT NULL DEFAULT 1,
  seller_id TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE custom_requests(
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
`

func seedUser(t *testing.T, db *sqlx.DB, id, role string) {
	t.Helper()
	db.MustExec(`INSERT INTO users(id,email,password_hash) VALUES(?,?,'x')`, id, id+"@test.local")
	db.MustExec(`INSERT INTO profiles(user_id,display_name,role) VALUES(?,?,?)`, id, "User "+id, role)
}

func seedSeller(t *testing.T, db *sqlx.DB, id, userID, shop string) {
	t.Helper()
	db.MustExec(`INSERT INTO sellers(id,user_id,shop_name,region) VALUES(?,?,?,'Test Region')`, id, userID, shop)
}

func seedProduct(t *testing.T, db *sqlx.DB, id, sellerID string, price float64, published bool) {
	t.Helper()
	pub := 0
	if published {
		pub = 1
	}
	db.MustExec(`INSERT INTO products(id,seller_id,title,price,stock,tags_json,published)
	  VALUES(?,?,?,?,10,'["craft"]',?)`, id, sellerID, "Product "+id, price, pub)
}

func seedOffer(t *testing.T, db *sqlx.DB, code, typ string, value, minCart float64, firstOnly bool) {
	t.Helper()
	fo := 0
	if firstOnly {
		fo = 1
	}
	db.MustExec(`INSERT INTO offers(id,code,type,value,min_cart_amount,first_order_only,active)
	  VALUES(?,?,?,?,?,?,1)`, "off-"+code, code, typ, value, minCart, fo)
}
