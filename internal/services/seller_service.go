package services

import (
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	"sutradhar/internal/domain"
	"sutradhar/internal/repos"
)

var ErrBadOrderStatus = errors.New("invalid order status")

// orderTransitions are the seller-side status moves out of each state.
var orderTransitions = map[string][]string{
	domain.OrderPlaced:  {domain.OrderPacked, domain.OrderCancelled},
	domain.OrderPacked:  {domain.OrderShipped, domain.OrderCancelled},
	domain.OrderShipped: {domain.OrderDelivered},
}

type SellerService struct {
	Sellers *repos.SellerRepo
	Prods   *repos.ProductRepo
	Orders  *repos.OrderRepo
}

func NewSellerService(sellers *repos.SellerRepo, prods *repos.ProductRepo, orders *repos.OrderRepo) *SellerService {
	return &SellerService{Sellers: sellers, Prods: prods, Orders: orders}
}

// SellerFor resolves the seller record for a user, creating one on first use
// so a profile switched to the seller role can start listing immediately.
func (s *SellerService) SellerFor(userID, displayName string) (domain.Seller, error) {
	sel, err := s.Sellers.ByUser(userID)
	if err == nil {
		return sel, nil
	}
	sel = domain.Seller{
		ID:       uuid.NewString(),
		UserID:   userID,
		ShopName: displayName,
	}
	if cerr := s.Sellers.Create(&sel); cerr != nil {
		return domain.Seller{}, cerr
	}
	return sel, nil
}

func (s *SellerService) ListProducts(sellerID string) ([]domain.CatalogProduct, error) {
	return s.Prods.ListBySeller(sellerID)
}

// ProductInput is the seller-editable slice of a product.
type ProductInput struct {
	Title         string   `json:"title" validate:"required,min=3,max=120"`
	Description   string   `json:"description" validate:"max=2000"`
	Price         float64  `json:"price" validate:"required,gt=0"`
	Stock         int      `json:"stock" validate:"gte=0"`
	Photos        []string `json:"photos"`
	Tags          []string `json:"tags"`
	EcoBadge      bool     `json:"eco_badge"`
	CulturalBadge bool     `json:"cultural_badge"`
	StoryText     string   `json:"story_text"`
	StoryAudioURL string   `json:"story_audio_url"`
	StoryLanguage string   `json:"story_language"`
	Published     bool     `json:"published"`
}

func (in ProductInput) toProduct(id, sellerID string) domain.Product {
	photos, _ := json.Marshal(emptyIfNil(in.Photos))
	tags, _ := json.Marshal(emptyIfNil(in.Tags))
	lang := in.StoryLanguage
	if lang == "" {
		lang = "en"
	}
	return domain.Product{
		ID:            id,
		SellerID:      sellerID,
		Title:         in.Title,
		Description:   in.Description,
		Price:         in.Price,
		Stock:         in.Stock,
		PhotosJSON:    string(photos),
		TagsJSON:      string(tags),
		EcoBadge:      in.EcoBadge,
		CulturalBadge: in.CulturalBadge,
		StoryText:     in.StoryText,
		StoryAudioURL: in.StoryAudioURL,
		StoryLanguage: lang,
		Published:     in.Published,
	}
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func (s *SellerService) CreateProduct(sellerID string, in ProductInput) (domain.CatalogProduct, error) {
	p := in.toProduct(uuid.NewString(), sellerID)
	if err := s.Prods.Create(&p); err != nil {
		return domain.CatalogProduct{}, err
	}
	return s.Prods.Get(p.ID)
}

func (s *SellerService) UpdateProduct(sellerID, productID string, in ProductInput) (domain.CatalogProduct, error) {
	p := in.toProduct(productID, sellerID)
	if err := s.Prods.Update(&p); err != nil {
		return domain.CatalogProduct{}, err
	}
	return s.Prods.Get(productID)
}

func (s *SellerService) ListOrders(sellerID string) ([]domain.Order, error) {
	return s.Orders.ListBySeller(sellerID)
}

// UpdateOrderStatus applies a fulfilment transition to one of the seller's own
// orders; out-of-order moves are rejected.
func (s *SellerService) UpdateOrderStatus(sellerID, orderID, status string) error {
	o, err := s.Orders.Get(orderID)
	if err != nil {
		return err
	}
	if o.SellerID != sellerID {
		return ErrBadOrderStatus
	}
	for _, next := range orderTransitions[o.Status] {
		if next == status {
			return s.Orders.UpdateStatus(orderID, status)
		}
	}
	return ErrBadOrderStatus
}
