package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/offerspot/offerspot-backend/internal/offer"
	"github.com/offerspot/offerspot-backend/internal/restaurant"
	"go.uber.org/zap"
)

var (
	ErrOfferNotFound = errors.New("offer not found in catalog")
	ErrUnavailable   = errors.New("catalog temporarily unavailable")
)

type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client talks to the remote catalog source. The restaurant list is
// the one endpoint every screen wants at once, so it is guarded by a
// TTL cache on the happy path and by a failure breaker on the unhappy
// one; the two policies are independent.
type Client struct {
	baseURL string
	http    *http.Client
	cache   *TTLCache[[]restaurant.Restaurant]
	breaker *Breaker
	logger  *zap.Logger
}

func NewClient(
	cfg Config,
	cache *TTLCache[[]restaurant.Restaurant],
	breaker *Breaker,
	logger *zap.Logger,
) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		cache:   cache,
		breaker: breaker,
		logger:  logger,
	}
}

func (c *Client) Offers(ctx context.Context) ([]offer.Offer, error) {
	var offers []offer.Offer
	if err := c.getJSON(ctx, "/offers", &offers); err != nil {
		return nil, err
	}

	return offers, nil
}

func (c *Client) Restaurants(ctx context.Context) ([]restaurant.Restaurant, error) {
	endpoint := c.baseURL + "/restaurants"

	if cached, ok := c.cache.Get(endpoint); ok {
		return cached, nil
	}

	if !c.breaker.Allow(endpoint) {
		c.logger.Debug("skipping restaurant fetch, breaker open", zap.String("endpoint", endpoint))
		return nil, ErrUnavailable
	}

	var restaurants []restaurant.Restaurant
	if err := c.getJSON(ctx, "/restaurants", &restaurants); err != nil {
		c.breaker.Failure(endpoint)
		return nil, err
	}

	c.breaker.Success(endpoint)
	c.cache.Set(endpoint, restaurants)

	return restaurants, nil
}

func (c *Client) OfferByID(ctx context.Context, id int) (*offer.Offer, error) {
	var result offer.Offer
	err := c.getJSON(ctx, "/offers/"+strconv.Itoa(id), &result)
	if err != nil {
		if errors.Is(err, errNotFound) {
			return nil, ErrOfferNotFound
		}
		return nil, err
	}

	return &result, nil
}

func (c *Client) OffersByRestaurantID(ctx context.Context, id int) ([]offer.Offer, error) {
	var offers []offer.Offer
	if err := c.getJSON(ctx, "/restaurants/"+strconv.Itoa(id)+"/offers", &offers); err != nil {
		return nil, err
	}

	return offers, nil
}

// SearchOffersByCuisine asks the catalog itself to filter, unlike the
// browse pipeline which filters locally.
func (c *Client) SearchOffersByCuisine(ctx context.Context, cuisine string) ([]offer.Offer, error) {
	var offers []offer.Offer
	if err := c.getJSON(ctx, "/offers/search/cuisine/"+url.PathEscape(cuisine), &offers); err != nil {
		return nil, err
	}

	return offers, nil
}

var errNotFound = errors.New("not found")

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errNotFound
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("catalog responded with status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode catalog response: %w", err)
	}

	return nil
}
