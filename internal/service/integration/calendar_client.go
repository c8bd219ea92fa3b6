package integration

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// Event is the bridge-level event shape. The ID is an opaque external
// identifier: stored, compared and passed through, never interpreted.
type Event struct {
	ID          string
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	Recurrence  []string
	ColorID     string
}

type ListOptions struct {
	TimeMin       *time.Time
	TimeMax       *time.Time
	SummaryPrefix string
	MaxResults    int64
}

type CalendarClient interface {
	InsertEvent(ctx context.Context, token string, event *Event) (string, error)
	UpdateEvent(ctx context.Context, token, eventID string, event *Event) error
	DeleteEvent(ctx context.Context, token, eventID string) error
	ListEvents(ctx context.Context, token string, opts ListOptions) ([]Event, error)
	ValidateToken(ctx context.Context, token string) error
}

type googleCalendarClient struct {
	calendarID string
	timeZone   string
	timeout    time.Duration
	retryCount int
	retryDelay time.Duration
	logger     zerolog.Logger
}

func NewGoogleCalendarClient(calendarID, timeZone string, timeout time.Duration, retryCount int, retryDelay time.Duration, logger zerolog.Logger) CalendarClient {
	return &googleCalendarClient{
		calendarID: calendarID,
		timeZone:   timeZone,
		timeout:    timeout,
		retryCount: retryCount,
		retryDelay: retryDelay,
		logger:     logger,
	}
}

func (c *googleCalendarClient) service(ctx context.Context, token string) (*calendar.Service, error) {
	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})

	svc, err := calendar.NewService(ctx, option.WithTokenSource(source))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}

	return svc, nil
}

func (c *googleCalendarClient) toGoogleEvent(event *Event) *calendar.Event {
	googleEvent := &calendar.Event{
		Summary:     event.Summary,
		Description: event.Description,
		Recurrence:  event.Recurrence,
		ColorId:     event.ColorID,
	}

	if !event.Start.IsZero() {
		googleEvent.Start = &calendar.EventDateTime{
			DateTime: event.Start.Format(time.RFC3339),
			TimeZone: c.timeZone,
		}
	}
	if !event.End.IsZero() {
		googleEvent.End = &calendar.EventDateTime{
			DateTime: event.End.Format(time.RFC3339),
			TimeZone: c.timeZone,
		}
	}

	return googleEvent
}

func parseEventTime(dt *calendar.EventDateTime) time.Time {
	if dt == nil {
		return time.Time{}
	}
	if dt.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, dt.DateTime); err == nil {
			return t
		}
	}
	if dt.Date != "" {
		if t, err := time.Parse("2006-01-02", dt.Date); err == nil {
			return t
		}
	}
	return time.Time{}
}

func (c *googleCalendarClient) InsertEvent(ctx context.Context, token string, event *Event) (string, error) {
	svc, err := c.service(ctx, token)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var created *calendar.Event
	var lastErr error

	for i := 0; i <= c.retryCount; i++ {
		if i > 0 {
			c.logger.Warn().Int("attempt", i).Msg("Retrying calendar event insert")
			time.Sleep(c.retryDelay * time.Duration(i))
		}

		created, lastErr = svc.Events.Insert(c.calendarID, c.toGoogleEvent(event)).Context(ctx).Do()
		if lastErr == nil {
			break
		}
	}

	if lastErr != nil {
		return "", fmt.Errorf("failed to insert calendar event after %d attempts: %w", c.retryCount+1, lastErr)
	}

	c.logger.Info().
		Str("event_id", created.Id).
		Str("summary", event.Summary).
		Msg("Calendar event created")

	return created.Id, nil
}

func (c *googleCalendarClient) UpdateEvent(ctx context.Context, token, eventID string, event *Event) error {
	svc, err := c.service(ctx, token)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	_, err = svc.Events.Update(c.calendarID, eventID, c.toGoogleEvent(event)).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to update calendar event %s: %w", eventID, err)
	}

	return nil
}

func (c *googleCalendarClient) DeleteEvent(ctx context.Context, token, eventID string) error {
	svc, err := c.service(ctx, token)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := svc.Events.Delete(c.calendarID, eventID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete calendar event %s: %w", eventID, err)
	}

	return nil
}

func (c *googleCalendarClient) ListEvents(ctx context.Context, token string, opts ListOptions) ([]Event, error) {
	svc, err := c.service(ctx, token)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	call := svc.Events.List(c.calendarID).
		Context(ctx).
		SingleEvents(true).
		OrderBy("startTime")

	if opts.TimeMin != nil {
		call = call.TimeMin(opts.TimeMin.Format(time.RFC3339))
	}
	if opts.TimeMax != nil {
		call = call.TimeMax(opts.TimeMax.Format(time.RFC3339))
	}
	if opts.MaxResults > 0 {
		call = call.MaxResults(opts.MaxResults)
	}

	var events []Event
	pageToken := ""
	for {
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		result, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list calendar events: %w", err)
		}

		for _, item := range result.Items {
			if opts.SummaryPrefix != "" && !strings.HasPrefix(item.Summary, opts.SummaryPrefix) {
				continue
			}

			events = append(events, Event{
				ID:          item.Id,
				Summary:     item.Summary,
				Description: item.Description,
				Start:       parseEventTime(item.Start),
				End:         parseEventTime(item.End),
				Recurrence:  item.Recurrence,
				ColorID:     item.ColorId,
			})

			if opts.MaxResults > 0 && int64(len(events)) >= opts.MaxResults {
				return events, nil
			}
		}

		pageToken = result.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return events, nil
}

func (c *googleCalendarClient) ValidateToken(ctx context.Context, token string) error {
	svc, err := c.service(ctx, token)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if _, err := svc.Calendars.Get(c.calendarID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("calendar token validation failed: %w", err)
	}

	return nil
}
