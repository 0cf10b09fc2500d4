package tests

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

func (s *APITestSuite) getJSON(path string, out any) *http.Response {
	resp, err := http.Get(s.baseUrl + path)
	s.Require().NoError(err)

	s.decodeBody(resp, out)

	return resp
}

func (s *APITestSuite) postJSON(path, body string, out any) *http.Response {
	resp, err := http.Post(s.baseUrl+path, "application/json", strings.NewReader(body))
	s.Require().NoError(err)

	s.decodeBody(resp, out)

	return resp
}

func (s *APITestSuite) decodeBody(resp *http.Response, out any) {
	defer resp.Body.Close()

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return
	}

	s.Require().NoError(json.NewDecoder(resp.Body).Decode(out))
}
