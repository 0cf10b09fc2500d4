package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/offerspot/offerspot-backend/internal/apperror"
	"github.com/offerspot/offerspot-backend/internal/handlers"
	"github.com/offerspot/offerspot-backend/internal/offer"
	"github.com/offerspot/offerspot-backend/internal/restaurant"
	"go.uber.org/zap"
)

type Service interface {
	All(ctx context.Context) []restaurant.Restaurant
	Offers(ctx context.Context, id int) []offer.Offer
}

type handler struct {
	service Service
	logger  *zap.Logger
}

func New(service Service, logger *zap.Logger) handlers.Handler {
	return &handler{
		service: service,
		logger:  logger,
	}
}

func (h *handler) Register(router chi.Router) {
	router.Route("/restaurants", func(restaurantRouter chi.Router) {
		restaurantRouter.Get("/", apperror.Middleware(h.listHandler))
		restaurantRouter.Get("/{id}/offers", apperror.Middleware(h.offersHandler))
	})
}

type RestaurantsResponse struct {
	Restaurants []restaurant.Restaurant `json:"restaurants"`
}

type RestaurantOffersResponse struct {
	Offers []offer.Offer `json:"offers"`
}

func (h *handler) listHandler(w http.ResponseWriter, r *http.Request) error {
	render.JSON(w, r, RestaurantsResponse{Restaurants: h.service.All(r.Context())})

	return nil
}

func (h *handler) offersHandler(w http.ResponseWriter, r *http.Request) error {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return apperror.ErrInvalidID
	}

	render.JSON(w, r, RestaurantOffersResponse{Offers: h.service.Offers(r.Context(), id)})

	return nil
}
