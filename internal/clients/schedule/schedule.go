package schedule

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

// Client asks the schedule collaborator which movies play on a given date.
type Client interface {
	// ByDate returns the day's schedule, or (nil, nil) when nothing is
	// scheduled that date.
	ByDate(ctx context.Context, date string) (*domain.DaySchedule, error)
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
		log:        baseLog.With("client", "ScheduleClient"),
	}
}

type httpError struct {
	StatusCode int
	Body       string
}

func (e *httpError) Error() string {
	return fmt.Sprintf("schedule service http %d: %s", e.StatusCode, e.Body)
}

func (e *httpError) HTTPStatusCode() int { return e.StatusCode }

func (c *client) ByDate(ctx context.Context, date string) (*domain.DaySchedule, error) {
	endpoint := c.baseURL + "/schedules/" + url.PathEscape(date)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build schedule request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call schedule service: %w", err)
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

	var day domain.DaySchedule
	if err := json.NewDecoder(resp.Body).Decode(&day); err != nil {
		return nil, fmt.Errorf("decode schedule response: %w", err)
	}
	return &day, nil
}
