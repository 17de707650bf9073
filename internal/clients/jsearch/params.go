package jsearch

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/jhagent/job-hunter/internal/domain/models"
)

// SearchParameters map onto the JSearch /search query string. Country, when
// set, forces the provider to scope results to that ISO-2 code; otherwise
// the provider guesses from the query text.
type SearchParameters struct {
	Query      string
	Location   string
	DatePosted models.DatePosted
	Country    string
	Page       int
	NumPages   int
}

func (s SearchParameters) Validate() error {

	if strings.TrimSpace(s.Query) == "" {
		return fmt.Errorf("query must not be empty")
	}

	if s.Page < 1 {
		return fmt.Errorf("page must be positive")
	}

	if s.NumPages < 1 || s.NumPages > 20 {
		return fmt.Errorf("num pages must be between 1 and 20")
	}

	if s.Country != "" && len(s.Country) != 2 {
		return fmt.Errorf("country must be an ISO-2 code, got %q", s.Country)
	}

	return nil
}

func (s SearchParameters) ToUrlParams() url.Values {

	query := s.Query
	if s.Location != "" {
		query = s.Query + " in " + s.Location
	}

	params := url.Values{}
	params.Add("query", query)
	params.Add("page", strconv.Itoa(s.Page))
	params.Add("num_pages", strconv.Itoa(s.NumPages))

	if s.DatePosted != "" {
		params.Add("date_posted", string(s.DatePosted))
	}

	if s.Country != "" {
		params.Add("country", strings.ToLower(s.Country))
	}

	return params
}
