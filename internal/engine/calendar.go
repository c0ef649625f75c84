package engine

import (
	"context"
	"net/http"
	"time"

	ics "github.com/arran4/golang-ical"
)

// BusyChecker answers whether a user's linked calendar marks an instant
// as busy. Implementations must fail open: suppression should never
// depend on a flaky feed.
type BusyChecker interface {
	Busy(ctx context.Context, feedURL string, at time.Time) bool
}

// CalendarClient fetches and parses an ICS feed.
type CalendarClient struct {
	httpClient *http.Client
}

func NewCalendarClient(timeout time.Duration) *CalendarClient {
	return &CalendarClient{httpClient: &http.Client{Timeout: timeout}}
}

// Busy reports whether at falls inside any event's [start, end). Fetch,
// parse, or timestamp errors all read as "not busy".
func (c *CalendarClient) Busy(ctx context.Context, feedURL string, at time.Time) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false
	}

	cal, err := ics.ParseCalendar(resp.Body)
	if err != nil {
		return false
	}
	for _, ev := range cal.Events() {
		start, err := ev.GetStartAt()
		if err != nil {
			continue
		}
		end, err := ev.GetEndAt()
		if err != nil {
			continue
		}
		if !at.Before(start) && at.Before(end) {
			return true
		}
	}
	return false
}
