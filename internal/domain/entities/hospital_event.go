package entities

import (
	"time"

	"github.com/google/uuid"
)

// HospitalEventType represents the type of hospital directory event.
type HospitalEventType string

const (
	HospitalEventTypeProfileCreated HospitalEventType = "profile_created"
	HospitalEventTypeServiceAdded   HospitalEventType = "service_added"
	HospitalEventTypeReviewAdded    HospitalEventType = "review_added"
)

// HospitalEvent is published on the event bus whenever directory data
// changes; cache invalidation subscribes to these.
type HospitalEvent struct {
	ID            string                 `json:"id"`
	HospitalID    string                 `json:"hospital_id"`
	EventType     HospitalEventType      `json:"event_type"`
	ChangedFields map[string]interface{} `json:"changed_fields,omitempty"`
	Timestamp     time.Time              `json:"timestamp"`
}

// NewHospitalEvent creates an event with a fresh ID and timestamp.
func NewHospitalEvent(hospitalID string, eventType HospitalEventType, changedFields map[string]interface{}) *HospitalEvent {
	return &HospitalEvent{
		ID:            uuid.NewString(),
		HospitalID:    hospitalID,
		EventType:     eventType,
		ChangedFields: changedFields,
		Timestamp:     time.Now().UTC(),
	}
}
