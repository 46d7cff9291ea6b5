package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"sutradhar/internal/domain"
	"sutradhar/internal/repos"
	"sutradhar/pkg/events"
)

// Cart-wide pricing rules. Shipping is free above the threshold, evaluated
// once on the whole cart; tax is a flat rate on the cart subtotal.
const (
	FreeShippingThreshold = 5000.0
	FlatShippingFee       = 200.0
	TaxRate               = 0.05
	PointsPerRupee        = 100 // 1 point per ₹100 of the final total
)

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrAddressRequired = errors.New("shipping address is required")
	ErrInvalidPromo    = errors.New("invalid or inactive promo code")
	ErrPromoMinCart    = errors.New("cart total below promo minimum")
	ErrPromoFirstOrder = errors.New("promo code is valid on the first order only")
)

type CheckoutService struct {
	Carts  *repos.CartRepo
	Orders *repos.OrderRepo
	Offers *repos.OfferRepo
	Events *events.Publisher
}

func NewCheckoutService(carts *repos.CartRepo, orders *repos.OrderRepo, offers *repos.OfferRepo, ev *events.Publisher) *CheckoutService {
	return &CheckoutService{Carts: carts, Orders: orders, Offers: offers, Events: ev}
}

// Quote is the priced view of a cart before or after checkout.
type Quote struct {
	Subtotal   float64 `json:"subtotal"`
	Discount   float64 `json:"discount"`
	Shipping   float64 `json:"shipping"`
	Tax        float64 `json:"tax"`
	FinalTotal float64 `json:"final_total"`
	PromoCode  string  `json:"promo_code,omitempty"`
}

// Receipt summarises a completed checkout.
type Receipt struct {
	OrderIDs     []string `json:"order_ids"`
	Quote        Quote    `json:"quote"`
	PointsEarned int      `json:"points_earned"`
}

// ResolveDiscount validates a promo code against a cart subtotal and returns
// the discount amount. Codes are matched exactly after upper-casing; percent
// offers take value% of the subtotal, fixed offers take value; either way the
// discount is capped at the subtotal.
func (s *CheckoutService) ResolveDiscount(code string, subtotal float64, buyerID string) (float64, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return 0, nil
	}
	offer, err := s.Offers.ByCode(code)
	if err != nil {
		return 0, ErrInvalidPromo
	}
	if offer.ExpiresAt != "" {
		if exp, perr := time.Parse(time.RFC3339, offer.ExpiresAt); perr == nil && time.Now().After(exp) {
			return 0, ErrInvalidPromo
		}
	}
	if subtotal < offer.MinCartAmount {
		return 0, ErrPromoMinCart
	}
	if offer.FirstOrderOnly && buyerID != "" {
		n, err := s.Orders.CountByBuyer(buyerID)
		if err != nil {
			return 0, err
		}
		if n > 0 {
			return 0, ErrPromoFirstOrder
		}
	}

	var discount float64
	switch offer.Type {
	case "percent":
		discount = subtotal * offer.Value / 100
	default: // fixed
		discount = offer.Value
	}
	return math.Min(discount, subtotal), nil
}

// PreviewQuote prices the current cart with an optional promo code without
// writing anything.
func (s *CheckoutService) PreviewQuote(buyerID, promoCode string) (Quote, error) {
	lines, err := s.Carts.ListByUser(buyerID)
	if err != nil {
		return Quote{}, err
	}
	subtotal := cartSubtotal(lines)
	if subtotal == 0 {
		return Quote{}, ErrEmptyCart
	}
	discount, err := s.ResolveDiscount(promoCode, subtotal, buyerID)
	if err != nil {
		return Quote{}, err
	}
	return buildQuote(subtotal, discount, promoCode), nil
}

func cartSubtotal(lines []repos.CartLineView) float64 {
	var sum float64
	for _, l := range lines {
		sum += l.PriceAtAdd * float64(l.Quantity)
	}
	return sum
}

func buildQuote(subtotal, discount float64, promoCode string) Quote {
	shipping := FlatShippingFee
	if subtotal > FreeShippingThreshold {
		shipping = 0
	}
	tax := subtotal * TaxRate
	return Quote{
		Subtotal:   subtotal,
		Discount:   discount,
		Shipping:   shipping,
		Tax:        tax,
		FinalTotal: subtotal - discount + shipping + tax,
		PromoCode:  strings.ToUpper(strings.TrimSpace(promoCode)),
	}
}

// sellerGroup is one seller's slice of the cart in first-seen order.
type sellerGroup struct {
	sellerID string
	lines    []repos.CartLineView
}

func groupBySeller(lines []repos.CartLineView) []sellerGroup {
	idx := map[string]int{}
	var groups []sellerGroup
	for _, l := range lines {
		i, ok := idx[l.SellerID]
		if !ok {
			i = len(groups)
			idx[l.SellerID] = i
			groups = append(groups, sellerGroup{sellerID: l.SellerID})
		}
		groups[i].lines = append(groups[i].lines, l)
	}
	return groups
}

// splitOrders partitions cart lines by seller and allocates the cart-wide
// charges: discount and tax proportionally to each group's share of the
// subtotal, shipping split equally across the distinct sellers.
func splitOrders(buyerID, address string, lines []repos.CartLineView, q Quote) []domain.Order {
	groups := groupBySeller(lines)
	sellerCount := float64(len(groups))

	orders := make([]domain.Order, 0, len(groups))
	for _, g := range groups {
		items := make([]domain.OrderItem, 0, len(g.lines))
		var groupSubtotal float64
		for _, l := range g.lines {
			items = append(items, domain.OrderItem{
				ProductID: l.ProductID,
				Title:     l.Title,
				Quantity:  l.Quantity,
				Price:     l.PriceAtAdd,
			})
			groupSubtotal += l.PriceAtAdd * float64(l.Quantity)
		}

		share := groupSubtotal / q.Subtotal
		discount := q.Discount * share
		tax := q.Tax * share
		shipping := q.Shipping / sellerCount

		itemsJSON, _ := json.Marshal(items)
		orders = append(orders, domain.Order{
			ID:              uuid.NewString(),
			BuyerID:         buyerID,
			SellerID:        g.sellerID,
			ItemsJSON:       string(itemsJSON),
			Items:           items,
			Subtotal:        groupSubtotal,
			Discount:        discount,
			Shipping:        shipping,
			Tax:             tax,
			Total:           groupSubtotal - discount + shipping + tax,
			ShippingAddress: address,
			PaymentMethod:   "card",
			PaymentStatus:   "pending",
			Status:          domain.OrderPlaced,
		})
	}
	return orders
}

// Place runs the whole checkout: price the cart, split it into one order per
// seller, and commit orders + cart clear + points accrual in one transaction.
func (s *CheckoutService) Place(buyerID, address, promoCode string) (*Receipt, error) {
	if strings.TrimSpace(address) == "" {
		return nil, ErrAddressRequired
	}
	lines, err := s.Carts.ListByUser(buyerID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	subtotal := cartSubtotal(lines)
	discount, err := s.ResolveDiscount(promoCode, subtotal, buyerID)
	if err != nil {
		return nil, err
	}
	q := buildQuote(subtotal, discount, promoCode)

	orders := splitOrders(buyerID, strings.TrimSpace(address), lines, q)

	points := int(math.Floor(q.FinalTotal / PointsPerRupee))
	var earned *domain.PointsEntry
	if points > 0 {
		earned = &domain.PointsEntry{
			ID:      uuid.NewString(),
			UserID:  buyerID,
			Type:    "earn",
			Points:  points,
			Note:    "Points earned from purchase",
			OrderID: orders[0].ID,
		}
	}

	if err := s.Orders.PlaceCheckout(orders, buyerID, earned); err != nil {
		return nil, fmt.Errorf("place checkout: %w", err)
	}

	// Best-effort event publishing; a broker outage never fails a checkout.
	if s.Events != nil {
		for _, o := range orders {
			s.Events.PublishOrderPlaced(o.ID, o.BuyerID, o.SellerID, o.Total)
		}
		if points > 0 {
			s.Events.PublishPointsEarned(buyerID, points)
		}
	}

	ids := make([]string, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}
	return &Receipt{OrderIDs: ids, Quote: q, PointsEarned: points}, nil
}
