package calendar

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// callTimeout bounds every outbound calendar call so a slow provider cannot
// stall a booking or assignment request.
const callTimeout = 5 * time.Second

// GoogleCalendar implements Port over the Google Calendar API. Outbound calls
// share a rate limiter so a burst of assignments stays inside API quotas.
type GoogleCalendar struct {
	svc     *gcal.Service
	limiter *rate.Limiter
}

// NewGoogleCalendar builds the client from service-account credentials.
func NewGoogleCalendar(ctx context.Context, credentialsFile string) (*GoogleCalendar, error) {
	svc, err := gcal.NewService(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize google calendar client: %w", err)
	}
	return &GoogleCalendar{
		svc:     svc,
		limiter: rate.NewLimiter(rate.Every(time.Second/10), 10),
	}, nil
}

func (g *GoogleCalendar) ListEvents(ctx context.Context, calendarRef string, from, to time.Time) ([]Event, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	res, err := g.svc.Events.List(calendarRef).
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list calendar events: %w", err)
	}

	events := make([]Event, 0, len(res.Items))
	for _, item := range res.Items {
		ev := Event{
			ID:          item.Id,
			Summary:     item.Summary,
			Description: item.Description,
		}
		if item.Start != nil && item.Start.DateTime != "" {
			if t, err := time.Parse(time.RFC3339, item.Start.DateTime); err == nil {
				ev.Start = t
			}
		}
		if item.End != nil && item.End.DateTime != "" {
			if t, err := time.Parse(time.RFC3339, item.End.DateTime); err == nil {
				ev.End = t
			}
		}
		events = append(events, ev)
	}
	return events, nil
}

func (g *GoogleCalendar) CreateEvent(ctx context.Context, calendarRef string, event Event) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()
	if err := g.limiter.Wait(ctx); err != nil {
		return "", err
	}

	created, err := g.svc.Events.Insert(calendarRef, &gcal.Event{
		Summary:     event.Summary,
		Description: event.Description,
		Start:       &gcal.EventDateTime{DateTime: event.Start.Format(time.RFC3339)},
		End:         &gcal.EventDateTime{DateTime: event.End.Format(time.RFC3339)},
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create calendar event: %w", err)
	}
	return created.Id, nil
}
