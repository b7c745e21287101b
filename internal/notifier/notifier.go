// Package notifier turns contribution events into activity feed lines.
package notifier

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"tracker/internal/amqp"
	"tracker/internal/core"
	"tracker/internal/log"
)

var errEmptyEvent = errors.New("empty contribution event")

// Feed logs one line per event and keeps running counts since start.
type Feed struct {
	logger *log.Logger

	mu     sync.Mutex
	counts map[string]int
}

// NewFeed creates a feed logging through logger.
func NewFeed(logger *log.Logger) *Feed {
	return &Feed{
		logger: logger.WithComponent(log.ComponentNotifier),
		counts: make(map[string]int),
	}
}

// Handle is an amqp consumer handler. A nil event is rejected so the broker
// requeues it.
func (f *Feed) Handle(ctx context.Context, ev *amqp.ContributionRecorded) error {
	if ev == nil {
		return errEmptyEvent
	}

	f.mu.Lock()
	f.counts[ev.Type]++
	seen := f.counts[ev.Type]
	f.mu.Unlock()

	f.logger.InfoContext(ctx, FeedLine(ev),
		log.FieldEventID, ev.ID,
		log.FieldContribType, ev.Type,
		log.FieldAmount, ev.Amount,
		"seen_for_type", seen,
		log.FieldOperation, log.OpConsume)
	return nil
}

// Count returns how many events of typ were handled.
func (f *Feed) Count(typ string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counts[typ]
}

// FeedLine describes an event without naming the contributor.
func FeedLine(ev *amqp.ContributionRecorded) string {
	switch core.ContributionType(ev.Type) {
	case core.VolunteerHours:
		return fmt.Sprintf("Someone logged %s volunteer hours", core.FormatAmount(ev.Amount))
	case core.MonetaryDonation:
		return fmt.Sprintf("Someone donated %s", core.FormatMoney(ev.Amount))
	default:
		return fmt.Sprintf("Someone logged %s (%s)", core.FormatAmount(ev.Amount), ev.Type)
	}
}
