package holiday

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Status tells how a Check was produced. A degraded lookup (directory
// unreachable, bad payload) assumes "not a holiday" instead of failing,
// so a directory outage never blocks bookings.
type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusAssumed   Status = "assumed"
)

type Check struct {
	Holiday bool
	Status  Status
}

// Oracle answers whether a calendar date is a national holiday.
type Oracle interface {
	IsHoliday(ctx context.Context, date time.Time) Check
}

type record struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

// Client queries a BrasilAPI-compatible holiday directory. In offline mode it
// answers from a fixed rule (only Dec 25 is a holiday) and never touches the
// network, which keeps tests deterministic.
type Client struct {
	baseURL    string
	httpClient *http.Client
	offline    bool
	log        *zap.Logger
}

func NewClient(baseURL string, offline bool, httpClient *http.Client, log *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		offline:    offline,
		log:        log,
	}
}

func (c *Client) IsHoliday(ctx context.Context, date time.Time) Check {
	if c.offline {
		c.log.Info("holiday lookup in offline mode, no request made",
			zap.String("date", date.Format("2006-01-02")),
		)
		return Check{
			Holiday: date.Month() == time.December && date.Day() == 25,
			Status:  StatusConfirmed,
		}
	}

	c.log.Info("querying holiday directory",
		zap.String("date", date.Format("2006-01-02")),
	)

	url := fmt.Sprintf("%s/feriados/v1/%d", c.baseURL, date.Year())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.log.Error("failed to build holiday directory request", zap.Error(err))
		return Check{Holiday: false, Status: StatusAssumed}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("holiday directory unreachable", zap.Error(err))
		return Check{Holiday: false, Status: StatusAssumed}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Error("holiday directory returned non-200",
			zap.Int("status", resp.StatusCode),
			zap.Int("year", date.Year()),
		)
		return Check{Holiday: false, Status: StatusAssumed}
	}

	var records []record
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		c.log.Error("failed to decode holiday directory response", zap.Error(err))
		return Check{Holiday: false, Status: StatusAssumed}
	}

	for _, r := range records {
		d, err := time.Parse("2006-01-02", r.Date)
		if err != nil {
			continue
		}
		if d.Year() == date.Year() && d.Month() == date.Month() && d.Day() == date.Day() {
			return Check{Holiday: true, Status: StatusConfirmed}
		}
	}

	return Check{Holiday: false, Status: StatusConfirmed}
}

var _ Oracle = (*Client)(nil)
