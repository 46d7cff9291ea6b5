package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"sutradhar/internal/domain"
	"sutradhar/internal/repos"
)

// Redemption rules: points convert at 5 points = ₹1, in steps of 25, capped
// per redemption at min(balance, 2000).
const (
	RedeemStep       = 25
	RedeemCap        = 2000
	PointsPerRupeeFx = 5
)

var (
	ErrRedeemAmount  = errors.New("redeem amount must be a positive multiple of 25")
	ErrRedeemBalance = errors.New("redeem amount exceeds redeemable balance")
)

type RewardsService struct {
	Points *repos.PointsRepo
	Offers *repos.OfferRepo
	Users  *repos.UserRepo
}

func NewRewardsService(points *repos.PointsRepo, offers *repos.OfferRepo, users *repos.UserRepo) *RewardsService {
	return &RewardsService{Points: points, Offers: offers, Users: users}
}

type RewardsSummary struct {
	Points  int                  `json:"points"`
	Tier    string               `json:"tier"`
	History []domain.PointsEntry `json:"history"`
	Offers  []domain.Offer       `json:"offers"`
}

func (s *RewardsService) Summary(userID string) (*RewardsSummary, error) {
	p, err := s.Users.Profile(userID)
	if err != nil {
		return nil, err
	}
	history, err := s.Points.History(userID, 10)
	if err != nil {
		return nil, err
	}
	offers, err := s.Offers.ListActive()
	if err != nil {
		return nil, err
	}
	return &RewardsSummary{
		Points:  p.Points,
		Tier:    domain.TierFor(p.Points),
		History: history,
		Offers:  offers,
	}, nil
}

type Redemption struct {
	Points  int `json:"points"`
	Value   int `json:"value"` // rupees
	Balance int `json:"balance"`
}

// Redeem converts points to a rupee discount value. The ledger entry and the
// balance decrement land in one transaction.
func (s *RewardsService) Redeem(userID string, points int) (*Redemption, error) {
	if points <= 0 || points%RedeemStep != 0 {
		return nil, ErrRedeemAmount
	}
	p, err := s.Users.Profile(userID)
	if err != nil {
		return nil, err
	}
	redeemable := p.Points
	if redeemable > RedeemCap {
		redeemable = RedeemCap
	}
	if points > redeemable {
		return nil, ErrRedeemBalance
	}

	value := points / PointsPerRupeeFx
	entry := &domain.PointsEntry{
		ID:     uuid.NewString(),
		UserID: userID,
		Type:   "redeem",
		Points: -points,
		Note:   fmt.Sprintf("Redeemed %d points for ₹%d discount", points, value),
	}
	if err := s.Points.Append(entry); err != nil {
		return nil, err
	}
	return &Redemption{Points: points, Value: value, Balance: p.Points - points}, nil
}
