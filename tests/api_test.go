package tests

import (
	"io"
	"net/http"
)

type offersResponse struct {
	Offers []struct {
		ID    int    `json:"id"`
		Title string `json:"title"`
	} `json:"offers"`
	Total int `json:"total"`
}

func (s *APITestSuite) TestPing() {
	resp, err := http.Get(s.baseUrl + "/api/ping")
	s.Require().NoError(err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("pong", string(body))
}

func (s *APITestSuite) TestBrowseSearchByRestaurantName() {
	var out offersResponse
	resp := s.getJSON("/api/offers?search=spice", &out)

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Require().Len(out.Offers, 1)
	s.Equal("Pizza Deal", out.Offers[0].Title)
}

func (s *APITestSuite) TestBrowseSearchWithoutMatch() {
	var out offersResponse
	resp := s.getJSON("/api/offers?search=sushi", &out)

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Empty(out.Offers)
	s.Equal(0, out.Total)
}

func (s *APITestSuite) TestBrowseCountryAndCuisine() {
	var out offersResponse
	resp := s.getJSON("/api/offers?country=Qatar&cuisines=Pizza", &out)

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Require().Len(out.Offers, 1)
	s.Equal(1, out.Offers[0].ID)
}

func (s *APITestSuite) TestOfferByID() {
	var out struct {
		Offer struct {
			Title string `json:"title"`
		} `json:"offer"`
	}
	resp := s.getJSON("/api/offers/1", &out)

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("Pizza Deal", out.Offer.Title)

	missing, err := http.Get(s.baseUrl + "/api/offers/999")
	s.Require().NoError(err)
	defer missing.Body.Close()

	s.Equal(http.StatusNotFound, missing.StatusCode)
}

func (s *APITestSuite) TestRestaurants() {
	var out struct {
		Restaurants []struct {
			Name string `json:"name"`
		} `json:"restaurants"`
	}
	resp := s.getJSON("/api/restaurants", &out)

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Require().Len(out.Restaurants, 1)
	s.Equal("Spice Garden", out.Restaurants[0].Name)
}

func (s *APITestSuite) TestFavoritesFlow() {
	offerBody := `{"id":1,"title":"Pizza Deal","originalPrice":100,"discountedPrice":80}`

	var toggled struct {
		Favorite bool `json:"favorite"`
	}
	resp := s.postJSON("/api/favorites/toggle", offerBody, &toggled)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.True(toggled.Favorite)

	var favs struct {
		Favorites []struct {
			ID int `json:"id"`
		} `json:"favorites"`
	}
	resp = s.getJSON("/api/favorites", &favs)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Require().Len(favs.Favorites, 1)
	s.Equal(1, favs.Favorites[0].ID)

	var refreshed struct {
		Favorites []struct {
			DiscountedPrice float64 `json:"discountedPrice"`
		} `json:"favorites"`
		LastRefreshed string `json:"lastRefreshed"`
	}
	resp = s.postJSON("/api/favorites/refresh", "", &refreshed)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Require().Len(refreshed.Favorites, 1)
	// the catalog stub answers with a fresher price on re-fetch
	s.Equal(float64(75), refreshed.Favorites[0].DiscountedPrice)
	s.NotEmpty(refreshed.LastRefreshed)

	resp = s.postJSON("/api/favorites/toggle", offerBody, &toggled)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.False(toggled.Favorite)
}
