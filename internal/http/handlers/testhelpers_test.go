package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	applog "sutradhar/internal/log"
)

// testApp builds the API over a fresh in-memory database.
func testApp(t *testing.T) (*fiber.App, *sqlx.DB) {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if _, err := db.Exec(testSchema); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "something went wrong, please try again"})
		},
	})
	Register(app, NewDeps(db, nil))
	return app, db
}

// seedMarket inserts two sellers with one published product each, plus a
// percent promo code.
func seedMarket(t *testing.T, db *sqlx.DB) {
	t.Helper()
	db.MustExec(`INSERT INTO users(id,email,password_hash) VALUES
	  ('u-meera','meera@test.local','x'),('u-arun','arun@test.local','x')`)
	db.MustExec(`INSERT INTO profiles(user_id,display_name,role) VALUES
	  ('u-meera','Meera','seller'),('u-arun','Arun','seller')`)
	db.MustExec(`INSERT INTO sellers(id,user_id,shop_name,region) VALUES
	  ('sel-a','u-meera','Kanchi Weaves','Tamil Nadu'),
	  ('sel-b','u-arun','Blue Pottery House','Rajasthan')`)
	db.MustExec(`INSERT INTO products(id,seller_id,title,price,stock,tags_json,published) VALUES
	  ('p-saree','sel-a','Kanjivaram Silk Saree',300,5,'["textile"]',1),
	  ('p-vase','sel-b','Jaipur Blue Pottery Vase',400,8,'["pottery"]',1)`)
	db.MustExec(`INSERT INTO offers(id,code,type,value,active) VALUES
	  ('off-1','TEXTILE20','percent',20,1)`)
}

func doJSON(t *testing.T, app *fiber.App, method, path, sid string, body any) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func sidOf(resp *http.Response) string {
	for _, c := range resp.Cookies() {
		if c.Name == "sid" && c.Value != "" {
			return c.Value
		}
	}
	return ""
}

// signup registers an account through the API and returns its session cookie.
func signup(t *testing.T, app *fiber.App, email, role string) string {
	t.Helper()
	resp := doJSON(t, app, "POST", "/api/v1/auth/signup", "", fiber.Map{
		"email": email, "password": "Str0ng!pass", "display_name": "Test " + role, "role": role,
	})
	if resp.StatusCode != 201 {
		t.Fatalf("signup %s: status %d", email, resp.StatusCode)
	}
	sid := sidOf(resp)
	if sid == "" {
		t.Fatal("signup did not set a sid cookie")
	}
	resp.Body.Close()
	return sid
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
