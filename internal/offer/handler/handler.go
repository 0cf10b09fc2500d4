package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/offerspot/offerspot-backend/internal/apperror"
	"github.com/offerspot/offerspot-backend/internal/handlers"
	"github.com/offerspot/offerspot-backend/internal/offer"
	"github.com/offerspot/offerspot-backend/internal/offer/service"
	"github.com/offerspot/offerspot-backend/pkg/utils"
	"go.uber.org/zap"
)

type Service interface {
	Browse(ctx context.Context, q service.BrowseQuery) []offer.Offer
	OfferByID(ctx context.Context, id int) (*offer.Offer, error)
	SearchByCuisine(ctx context.Context, cuisine string) []offer.Offer
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
	router.Route("/offers", func(offerRouter chi.Router) {
		offerRouter.Get("/", apperror.Middleware(h.browseHandler))
		offerRouter.Get("/search/cuisine/{cuisine}", apperror.Middleware(h.searchByCuisineHandler))
		offerRouter.Get("/{id}", apperror.Middleware(h.offerByIDHandler))
	})
}

func (h *handler) browseHandler(w http.ResponseWriter, r *http.Request) error {
	params := r.URL.Query()

	q := service.BrowseQuery{
		Query: offer.Query{
			Country:  params.Get("country"),
			Category: params.Get("category"),
			Search:   params.Get("search"),
			Criteria: offer.Criteria{
				Cuisines:   splitMulti(params["cuisines"]),
				Locations:  splitMulti(params["locations"]),
				OfferTypes: splitMulti(params["types"]),
			},
		},
		Sort: offer.SortOption(params.Get("sort")),
	}

	offers := h.service.Browse(r.Context(), q)

	render.JSON(w, r, OffersResponse{Offers: offers, Total: len(offers)})

	return nil
}

func (h *handler) offerByIDHandler(w http.ResponseWriter, r *http.Request) error {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return apperror.ErrInvalidID
	}

	result, err := h.service.OfferByID(r.Context(), id)
	if err != nil {
		return err
	}

	render.JSON(w, r, OfferResponse{Offer: *result})

	return nil
}

func (h *handler) searchByCuisineHandler(w http.ResponseWriter, r *http.Request) error {
	cuisine := chi.URLParam(r, "cuisine")

	offers := h.service.SearchByCuisine(r.Context(), cuisine)

	render.JSON(w, r, OffersResponse{Offers: offers, Total: len(offers)})

	return nil
}

// splitMulti accepts both repeated query params and comma-separated
// values, trims whitespace and drops duplicates.
func splitMulti(values []string) []string {
	var out []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}

	if len(out) == 0 {
		return nil
	}

	return utils.RemoveDuplicates(out)
}
