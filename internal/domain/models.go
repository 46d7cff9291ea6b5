package domain

// SellerInfo is the public slice of a seller row joined onto catalog reads.
type SellerInfo struct {
	ID            string  `db:"seller_id" json:"id"`
	ShopName      string  `db:"shop_name" json:"shop_name"`
	Region        string  `db:"region" json:"region,omitempty"`
	Rating        float64 `db:"rating" json:"rating"`
	VerifiedBadge bool    `db:"verified_badge" json:"verified_badge"`
}

type Seller struct {
	ID            string  `db:"id" json:"id"`
	UserID        string  `db:"user_id" json:"user_id"`
	ShopName      string  `db:"shop_name" json:"shop_name"`
	Region        string  `db:"region" json:"region,omitempty"`
	Bio           string  `db:"bio" json:"bio,omitempty"`
	Rating        float64 `db:"rating" json:"rating"`
	VerifiedBadge bool    `db:"verified_badge" json:"verified_badge"`
	EcoBadge      bool    `db:"eco_badge" json:"eco_badge"`
	CulturalBadge bool    `db:"cultural_badge" json:"cultural_badge"`
	TotalSales    int     `db:"total_sales" json:"total_sales"`
	CreatedAt     string  `db:"created_at" json:"created_at"`
}

type Product struct {
	ID            string  `db:"id" json:"id"`
	SellerID      string  `db:"seller_id" json:"seller_id"`
	Title         string  `db:"title" json:"title" validate:"required,min=3,max=120"`
	Description   string  `db:"description" json:"description,omitempty"`
	Price         float64 `db:"price" json:"price" validate:"required,gt=0"`
	Stock         int     `db:"stock" json:"stock" validate:"gte=0"`
	PhotosJSON    string  `db:"photos_json" json:"-"`
	TagsJSON      string  `db:"tags_json" json:"-"`
	EcoBadge      bool    `db:"eco_badge" json:"eco_badge"`
	CulturalBadge bool    `db:"cultural_badge" json:"cultural_badge"`
	StoryText     string  `db:"story_text" json:"story_text,omitempty"`
	StoryAudioURL string  `db:"story_audio_url" json:"story_audio_url,omitempty"`
	StoryLanguage string  `db:"story_language" json:"story_language,omitempty"`
	Published     bool    `db:"published" json:"published"`
	CreatedAt     string  `db:"created_at" json:"created_at"`
	UpdatedAt     string  `db:"updated_at" json:"updated_at,omitempty"`

	Photos []string `db:"-" json:"photos"`
	Tags   []string `db:"-" json:"tags"`
}

// CatalogProduct is a product row with its seller columns flattened in.
type CatalogProduct struct {
	Product
	Seller SellerInfo `json:"seller"`
}

// CartLine is one row of a user's cart. PriceAtAdd is the price snapshot taken
// when the line was inserted and stays the authoritative line price through
// checkout, regardless of later product edits.
type CartLine struct {
	ID         string  `db:"id" json:"id"`
	UserID     string  `db:"user_id" json:"user_id"`
	ProductID  string  `db:"product_id" json:"product_id"`
	Quantity   int     `db:"quantity" json:"quantity"`
	PriceAtAdd float64 `db:"price_at_add" json:"price_at_add"`
	CreatedAt  string  `db:"created_at" json:"created_at"`
}

type WishlistEntry struct {
	ID        string `db:"id" json:"id"`
	UserID    string `db:"user_id" json:"user_id"`
	ProductID string `db:"product_id" json:"product_id"`
	CreatedAt string `db:"created_at" json:"created_at"`
}

// OrderItem is one element of an order's immutable items snapshot.
type OrderItem struct {
	ProductID string  `json:"product_id,omitempty"`
	Title     string  `json:"title"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type Order struct {
	ID              string  `db:"id" json:"id"`
	BuyerID         string  `db:"buyer_id" json:"buyer_id"`
	SellerID        string  `db:"seller_id" json:"seller_id"`
	ItemsJSON       string  `db:"items_json" json:"-"`
	Subtotal        float64 `db:"subtotal" json:"subtotal"`
	Discount        float64 `db:"discount" json:"discount"`
	Shipping        float64 `db:"shipping" json:"shipping"`
	Tax             float64 `db:"tax" json:"tax"`
	Total           float64 `db:"total" json:"total"`
	ShippingAddress string  `db:"shipping_address" json:"shipping_address,omitempty"`
	PaymentMethod   string  `db:"payment_method" json:"payment_method,omitempty"`
	PaymentStatus   string  `db:"payment_status" json:"payment_status,omitempty"`
	Status          string  `db:"status" json:"status"`
	CustomRequestID string  `db:"custom_request_id" json:"custom_request_id,omitempty"`
	TrackingNumber  string  `db:"tracking_number" json:"tracking_number,omitempty"`
	CreatedAt       string  `db:"created_at" json:"created_at"`
	UpdatedAt       string  `db:"updated_at" json:"updated_at,omitempty"`

	Items []OrderItem `db:"-" json:"items"`
}

// Order statuses. Only "placed" is written by checkout; the rest are seller
// transitions.
const (
	OrderPlaced    = "placed"
	OrderPacked    = "packed"
	OrderShipped   = "shipped"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

// PointsEntry is an append-only points ledger transaction. Points is signed:
// positive for earn/adjust-up, negative for redeem.
type PointsEntry struct {
	ID        string `db:"id" json:"id"`
	UserID    string `db:"user_id" json:"user_id"`
	Type      string `db:"type" json:"type"` // earn | redeem | adjust
	Points    int    `db:"points" json:"points"`
	Note      string `db:"note" json:"note,omitempty"`
	OrderID   string `db:"order_id" json:"order_id,omitempty"`
	CreatedAt string `db:"created_at" json:"created_at"`
}

type Offer struct {
	ID             string  `db:"id" json:"id"`
	Code           string  `db:"code" json:"code"`
	Type           string  `db:"type" json:"type"` // percent | fixed
	Value          float64 `db:"value" json:"value"`
	MinCartAmount  float64 `db:"min_cart_amount" json:"min_cart_amount,omitempty"`
	FirstOrderOnly bool    `db:"first_order_only" json:"first_order_only"`
	ExpiresAt      string  `db:"expires_at" json:"expires_at,omitempty"`
	Active         bool    `db:"active" json:"active"`
	SellerID       string  `db:"seller_id" json:"seller_id,omitempty"`
	CreatedAt      string  `db:"created_at" json:"created_at"`
}

// Custom request statuses. This service performs new (create), new->quoted
// (seller) and quoted->accepted (buyer); the shipping-side transitions are
// seller fulfilment updates.
const (
	RequestNew        = "new"
	RequestQuoted     = "quoted"
	RequestAccepted   = "accepted"
	RequestInProgress = "in_progress"
	RequestShipped    = "shipped"
	RequestDelivered  = "delivered"
	RequestCancelled  = "cancelled"
)

type CustomRequest struct {
	ID                string  `db:"id" json:"id"`
	BuyerID           string  `db:"buyer_id" json:"buyer_id"`
	SellerID          string  `db:"seller_id" json:"seller_id,omitempty"`
	BriefText         string  `db:"brief_text" json:"brief_text"`
	Budget            float64 `db:"budget" json:"budget,omitempty"`
	TimelineDays      int     `db:"timeline_days" json:"timeline_days,omitempty"`
	Materials         string  `db:"materials" json:"materials,omitempty"`
	Status            string  `db:"status" json:"status"`
	QuoteAmount       float64 `db:"quote_amount" json:"quote_amount,omitempty"`
	QuoteTimelineDays int     `db:"quote_timeline_days" json:"quote_timeline_days,omitempty"`
	CreatedAt         string  `db:"created_at" json:"created_at"`
	UpdatedAt         string  `db:"updated_at" json:"updated_at,omitempty"`
}
