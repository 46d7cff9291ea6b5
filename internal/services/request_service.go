package services

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"

	"sutradhar/internal/domain"
	"sutradhar/internal/repos"
)

var (
	ErrBriefRequired = errors.New("brief text is required")
	ErrNotQuoted     = errors.New("request has no open quote to accept")
	ErrNotQuotable   = errors.New("request is not open for quoting")
)

type RequestService struct {
	Requests *repos.RequestRepo
}

func NewRequestService(requests *repos.RequestRepo) *RequestService {
	return &RequestService{Requests: requests}
}

func (s *RequestService) Create(buyerID, brief string, budget float64, timelineDays int, materials string) (*domain.CustomRequest, error) {
	brief = strings.TrimSpace(brief)
	if brief == "" {
		return nil, ErrBriefRequired
	}
	cr := &domain.CustomRequest{
		ID:           uuid.NewString(),
		BuyerID:      buyerID,
		BriefText:    brief,
		Budget:       budget,
		TimelineDays: timelineDays,
		Materials:    strings.TrimSpace(materials),
		Status:       domain.RequestNew,
	}
	if err := s.Requests.Create(cr); err != nil {
		return nil, err
	}
	return cr, nil
}

func (s *RequestService) ListForBuyer(buyerID string) ([]domain.CustomRequest, error) {
	return s.Requests.ListByBuyer(buyerID)
}

func (s *RequestService) ListForSeller(sellerID string) ([]domain.CustomRequest, error) {
	return s.Requests.ListOpenForSeller(sellerID)
}

// AcceptQuote performs the only buyer-side transition: quoted -> accepted.
// It inserts a linked order snapshotting the quote as a single line item and
// flips the status, atomically.
func (s *RequestService) AcceptQuote(requestID, buyerID string) (*domain.Order, error) {
	cr, err := s.Requests.Get(requestID)
	if err != nil {
		return nil, err
	}
	if cr.BuyerID != buyerID {
		return nil, ErrNotQuoted
	}
	if cr.Status != domain.RequestQuoted || cr.QuoteAmount <= 0 {
		return nil, ErrNotQuoted
	}

	items := []domain.OrderItem{{Title: "Custom Order", Quantity: 1, Price: cr.QuoteAmount}}
	itemsJSON, _ := json.Marshal(items)
	order := &domain.Order{
		ID:              uuid.NewString(),
		BuyerID:         buyerID,
		SellerID:        cr.SellerID,
		ItemsJSON:       string(itemsJSON),
		Items:           items,
		Subtotal:        cr.QuoteAmount,
		Total:           cr.QuoteAmount,
		PaymentMethod:   "card",
		PaymentStatus:   "pending",
		Status:          domain.OrderPlaced,
		CustomRequestID: cr.ID,
	}

	ok, err := s.Requests.AcceptQuote(cr.ID, order)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotQuoted
	}
	return order, nil
}

// Quote claims a new request for a seller and attaches the quoted amount.
func (s *RequestService) Quote(requestID, sellerID string, amount float64, timelineDays int) error {
	if amount <= 0 {
		return ErrNotQuotable
	}
	ok, err := s.Requests.Quote(requestID, sellerID, amount, timelineDays)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotQuotable
	}
	return nil
}
