package googlecal

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"freebusy/internal/domain"
)

// Client fetches calendar events through the Google Calendar API. Each call
// authenticates with the participant's stored OAuth token; token acquisition
// and refresh storage are outside this adapter.
type Client struct {
	config *oauth2.Config
	logger *slog.Logger
}

// New returns a Google Calendar client for the given OAuth application.
func New(logger *slog.Logger, clientID, clientSecret string) *Client {
	return &Client{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Scopes:       []string{calendar.CalendarReadonlyScope},
			Endpoint:     google.Endpoint,
		},
		logger: logger,
	}
}

// FetchEvents implements domain.CalendarSource. It lists the primary
// calendar between timeMin and timeMax with recurring events expanded and
// deleted events excluded, and maps items to the raw shape the transform
// consumes. Filtering of cancelled or malformed items is the transform's
// responsibility, not this adapter's.
func (c *Client) FetchEvents(ctx context.Context, credential domain.CalendarCredential, timeMin, timeMax time.Time) ([]domain.RawCalendarEvent, error) {
	token := &oauth2.Token{}
	if err := json.Unmarshal(credential, token); err != nil {
		return nil, fmt.Errorf("decode calendar credential: %w", err)
	}

	httpClient := c.config.Client(ctx, token)
	service, err := calendar.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}

	events, err := service.Events.List("primary").
		ShowDeleted(false).
		SingleEvents(true).
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		OrderBy("startTime").
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve events: %w", err)
	}

	raw := toRawEvents(events.Items)
	c.logger.Debug("fetched calendar events", "count", len(raw))
	return raw, nil
}

func toRawEvents(items []*calendar.Event) []domain.RawCalendarEvent {
	out := make([]domain.RawCalendarEvent, 0, len(items))
	for _, item := range items {
		ev := domain.RawCalendarEvent{
			ID:     item.Id,
			Status: item.Status,
		}
		if item.Start != nil {
			ev.Start = domain.RawEventTime{DateTime: item.Start.DateTime, Date: item.Start.Date}
		}
		if item.End != nil {
			ev.End = domain.RawEventTime{DateTime: item.End.DateTime, Date: item.End.Date}
		}
		out = append(out, ev)
	}
	return out
}

var _ domain.CalendarSource = (*Client)(nil)
