package handlers

import (
	"sutradhar/internal/repos"
	"sutradhar/internal/services"
	"sutradhar/pkg/events"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	Auth *services.AuthService

	AuthHandler     *AuthHandler
	CatalogHandler  *CatalogHandler
	CartHandler     *CartHandler
	WishlistHandler *WishlistHandler
	CheckoutHandler *CheckoutHandler
	RewardsHandler  *RewardsHandler
	RequestHandler  *RequestHandler
	SellerHandler   *SellerHandler
}

func NewDeps(db *sqlx.DB, ev *events.Publisher) *Deps {
	userRepo := repos.NewUserRepo(db)
	prodRepo := repos.NewProductRepo(db)
	cartRepo := repos.NewCartRepo(db)
	wishRepo := repos.NewWishlistRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	pointsRepo := repos.NewPointsRepo(db)
	offerRepo := repos.NewOfferRepo(db)
	requestRepo := repos.NewRequestRepo(db)
	sellerRepo := repos.NewSellerRepo(db)

	authSvc := services.NewAuthService(userRepo)
	catalogSvc := services.NewCatalogService(prodRepo)
	cartSvc := services.NewCartService(cartRepo, prodRepo)
	wishSvc := services.NewWishlistService(wishRepo)
	checkoutSvc := services.NewCheckoutService(cartRepo, orderRepo, offerRepo, ev)
	rewardsSvc := services.NewRewardsService(pointsRepo, offerRepo, userRepo)
	requestSvc := services.NewRequestService(requestRepo)
	sellerSvc := services.NewSellerService(sellerRepo, prodRepo, orderRepo)

	return &Deps{
		Auth:            authSvc,
		AuthHandler:     &AuthHandler{Auth: authSvc},
		CatalogHandler:  &CatalogHandler{Catalog: catalogSvc},
		CartHandler:     &CartHandler{Cart: cartSvc, Auth: authSvc},
		WishlistHandler: &WishlistHandler{Wish: wishSvc},
		CheckoutHandler: &CheckoutHandler{Checkout: checkoutSvc, Orders: orderRepo},
		RewardsHandler:  &RewardsHandler{Rewards: rewardsSvc},
		RequestHandler:  &RequestHandler{Requests: requestSvc},
		SellerHandler:   &SellerHandler{Seller: sellerSvc, Requests: requestSvc},
	}
}
