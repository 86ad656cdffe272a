package providers

import (
	"context"

	"github.com/pulseai-health/hospital-directory/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to
// hospital directory events.
type EventBus interface {
	// Publish publishes an event to a channel.
	Publish(ctx context.Context, channel string, event *entities.HospitalEvent) error

	// Subscribe returns a channel delivering events published on the
	// given channel. The subscription ends when ctx is cancelled.
	Subscribe(ctx context.Context, channel string) (<-chan *entities.HospitalEvent, error)

	// Unsubscribe tears down a channel subscription.
	Unsubscribe(ctx context.Context, channel string) error

	// Close shuts down the bus and all subscriptions.
	Close() error
}

const (
	// EventChannelHospitalUpdates carries all directory mutations.
	EventChannelHospitalUpdates = "hospital:updates"

	// EventChannelHospitalPrefix prefixes hospital-specific channels.
	EventChannelHospitalPrefix = "hospital:"
)

// HospitalChannel returns the event channel for a single hospital.
func HospitalChannel(hospitalID string) string {
	return EventChannelHospitalPrefix + hospitalID
}
