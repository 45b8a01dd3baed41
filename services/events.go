package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Dosada05/court-finder/models"
)

// EventPublisher receives an event after every committed write.
type EventPublisher interface {
	Publish(ctx context.Context, event models.VenueEvent) error
}

// FanoutPublisher delivers each event to every publisher and joins their errors.
type FanoutPublisher []EventPublisher

func (f FanoutPublisher) Publish(ctx context.Context, event models.VenueEvent) error {
	var errs []error
	for _, p := range f {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func newEvent(t models.EventType) models.VenueEvent {
	return models.VenueEvent{Type: t, At: time.Now().UTC()}
}

func venueEvent(t models.EventType, venueID int) models.VenueEvent {
	e := newEvent(t)
	e.VenueID = &venueID
	return e
}

func sportEvent(t models.EventType, sportID int) models.VenueEvent {
	e := newEvent(t)
	e.SportID = &sportID
	return e
}

// publish never fails the caller; the write is already committed.
func publish(ctx context.Context, p EventPublisher, logger *slog.Logger, event models.VenueEvent) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, event); err != nil {
		logger.WarnContext(ctx, "Failed to publish event", slog.String("type", string(event.Type)), slog.Any("error", err))
	}
}
