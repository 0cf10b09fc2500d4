package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/offerspot/offerspot-backend/internal/apperror"
	"github.com/offerspot/offerspot-backend/internal/favorites"
	"github.com/offerspot/offerspot-backend/internal/handlers"
	"github.com/offerspot/offerspot-backend/internal/offer"
	"go.uber.org/zap"
)

var validate = validator.New()

type Store interface {
	All() []favorites.Snapshot
	Toggle(o offer.Offer) bool
	Remove(id int)
	IsFavorite(id int) bool
	Refresh(ctx context.Context)
	LastRefreshed() time.Time
}

type handler struct {
	store  Store
	logger *zap.Logger
}

func New(store Store, logger *zap.Logger) handlers.Handler {
	return &handler{
		store:  store,
		logger: logger,
	}
}

func (h *handler) Register(router chi.Router) {
	router.Route("/favorites", func(favoritesRouter chi.Router) {
		favoritesRouter.Get("/", apperror.Middleware(h.listHandler))
		favoritesRouter.Post("/toggle", apperror.Middleware(h.toggleHandler))
		favoritesRouter.Post("/refresh", apperror.Middleware(h.refreshHandler))
		favoritesRouter.Get("/{id}", apperror.Middleware(h.isFavoriteHandler))
		favoritesRouter.Delete("/{id}", apperror.Middleware(h.removeHandler))
	})
}

func (h *handler) listHandler(w http.ResponseWriter, r *http.Request) error {
	render.JSON(w, r, h.favoritesResponse())

	return nil
}

func (h *handler) toggleHandler(w http.ResponseWriter, r *http.Request) error {
	var dto ToggleRequest
	if err := render.DecodeJSON(r.Body, &dto); err != nil {
		h.logger.Error(apperror.ErrDecodeBody.Error(), zap.Error(err))
		return apperror.ErrDecodeBody
	}

	if err := validate.Struct(dto); err != nil {
		return apperror.NewValidationErr(err.(validator.ValidationErrors))
	}

	favorite := h.store.Toggle(dto.ToDomain())

	render.JSON(w, r, ToggleResponse{Favorite: favorite})

	return nil
}

func (h *handler) refreshHandler(w http.ResponseWriter, r *http.Request) error {
	h.store.Refresh(r.Context())

	render.JSON(w, r, h.favoritesResponse())

	return nil
}

func (h *handler) isFavoriteHandler(w http.ResponseWriter, r *http.Request) error {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return apperror.ErrInvalidID
	}

	render.JSON(w, r, IsFavoriteResponse{Favorite: h.store.IsFavorite(id)})

	return nil
}

func (h *handler) removeHandler(w http.ResponseWriter, r *http.Request) error {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return apperror.ErrInvalidID
	}

	h.store.Remove(id)

	render.JSON(w, r, h.favoritesResponse())

	return nil
}

func (h *handler) favoritesResponse() FavoritesResponse {
	resp := FavoritesResponse{Favorites: h.store.All()}

	if lastRefreshed := h.store.LastRefreshed(); !lastRefreshed.IsZero() {
		resp.LastRefreshed = &lastRefreshed
	}

	return resp
}
