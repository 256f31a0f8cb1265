package user

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cinebook/backend/internal/domain"
	"github.com/cinebook/backend/internal/pkg/httpx"
	"github.com/cinebook/backend/internal/pkg/logger"
)

// Client fetches user records from the identity collaborator.
type Client interface {
	// UserByID returns the user, or (nil, nil) when no such user exists.
	UserByID(ctx context.Context, userID string) (*domain.User, error)
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
		log:        baseLog.With("client", "UserClient"),
	}
}

type httpError struct {
	StatusCode int
	Body       string
}

func (e *httpError) Error() string {
	return fmt.Sprintf("user service http %d: %s", e.StatusCode, e.Body)
}

func (e *httpError) HTTPStatusCode() int { return e.StatusCode }

func (c *client) UserByID(ctx context.Context, userID string) (*domain.User, error) {
	endpoint := c.baseURL + "/users/" + url.PathEscape(userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build user request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call user service: %w", err)
	}
	defer httpx.DrainAndClose(resp)

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		return nil, &httpError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(buf.String())}
	}

	var u domain.User
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return nil, fmt.Errorf("decode user response: %w", err)
	}
	return &u, nil
}
