package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"tracker/internal/core"
)

// RoutingKeyContributionRecorded routes ContributionRecorded events.
const RoutingKeyContributionRecorded = "contribution.recorded"

// ContributionRecorded announces that one contribution was stored.
// It deliberately omits the contributor name.
type ContributionRecorded struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Amount     float64   `json:"amount"`
	RecordedAt time.Time `json:"recorded_at"`
}

// NewContributionRecorded builds an event for r with a fresh ID.
func NewContributionRecorded(r core.Record) *ContributionRecorded {
	return &ContributionRecorded{
		ID:         uuid.NewString(),
		Type:       string(r.Type),
		Amount:     r.Amount,
		RecordedAt: r.Timestamp,
	}
}

// ToJSON converts the message to JSON bytes
func (m *ContributionRecorded) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ContributionRecordedFromJSON decodes an event body.
func ContributionRecordedFromJSON(data []byte) (*ContributionRecorded, error) {
	var msg ContributionRecorded
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
