package movie

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cinebook/backend/internal/domain"
	"github.com/cinebook/backend/internal/pkg/httpx"
	"github.com/cinebook/backend/internal/pkg/logger"
)

// Client looks movies up in the catalog collaborator. The catalog speaks
// GraphQL over HTTP.
type Client interface {
	// MovieByID returns the movie summary, or (nil, nil) when the catalog
	// reports no such movie.
	MovieByID(ctx context.Context, movieID string) (*domain.MovieSummary, error)
}

type client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

func New(baseURL string, timeout time.Duration, baseLog *logger.Logger) Client {
	return &client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        baseLog.With("client", "MovieClient"),
	}
}

type graphqlRequest struct {
	Query string `json:"query"`
}

type movieByIDResponse struct {
	Data struct {
		MovieByID *domain.MovieSummary `json:"movie_by_id"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

type httpError struct {
	StatusCode int
	Body       string
}

func (e *httpError) Error() string {
	return fmt.Sprintf("movie service http %d: %s", e.StatusCode, e.Body)
}

func (e *httpError) HTTPStatusCode() int { return e.StatusCode }

func (c *client) MovieByID(ctx context.Context, movieID string) (*domain.MovieSummary, error) {
	query := fmt.Sprintf(`query { movie_by_id(id: %q) { id title rating director } }`, movieID)
	body, err := json.Marshal(graphqlRequest{Query: query})
	if err != nil {
		return nil, fmt.Errorf("encode movie query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/graphql", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build movie request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call movie service: %w", err)
	}
	defer httpx.DrainAndClose(resp)

	if resp.StatusCode != http.StatusOK {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		return nil, &httpError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(buf.String())}
	}

	var parsed movieByIDResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode movie response: %w", err)
	}
	if len(parsed.Errors) > 0 {
		return nil, fmt.Errorf("movie service graphql error: %s", parsed.Errors[0].Message)
	}
	return parsed.Data.MovieByID, nil
}
