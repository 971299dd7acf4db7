// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// EventType is the closed set of product-usage events, in funnel order.
type EventType string

const (
	EventPageView               EventType = "page_view"
	EventAccountCreated         EventType = "account_created"
	EventProfileCreated         EventType = "recipient_profile_created"
	EventQuestionnaireCompleted EventType = "questionnaire_completed"
	EventIdeasGenerated         EventType = "gift_ideas_generated"
	EventIdeaSaved              EventType = "gift_idea_saved"
	EventOutboundClick          EventType = "outbound_link_clicked"
	EventReminderCreated        EventType = "reminder_created"
)

// ErrUnknownEventType is returned when decoding an event whose type is not
// one of EventTypes().
var ErrUnknownEventType = errors.New("unknown event type")

// EventTypes returns every event type in funnel order.
func EventTypes() []EventType {
	return []EventType{
		EventPageView,
		EventAccountCreated,
		EventProfileCreated,
		EventQuestionnaireCompleted,
		EventIdeasGenerated,
		EventIdeaSaved,
		EventOutboundClick,
		EventReminderCreated,
	}
}

// Valid reports whether t is a known event type.
func (t EventType) Valid() bool {
	for _, known := range EventTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// Event is an immutable, timestamped fact about a user action.
// UserID is empty for anonymous events (page views before sign-up).
type Event struct {
	ID        string        `json:"id"`
	UserID    string        `json:"user_id,omitempty"`
	SessionID string        `json:"session_id"`
	Type      EventType     `json:"event_type"`
	Timestamp time.Time     `json:"timestamp"`
	Metadata  EventMetadata `json:"metadata,omitempty"`
}

// RecommendationItem is a single gift suggestion. IdeaID joins generation,
// save and click events.
type RecommendationItem struct {
	IdeaID      string `json:"idea_id"`
	ProductName string `json:"product_name,omitempty"`
	Category    string `json:"category,omitempty"`
	ShopName    string `json:"shop_name,omitempty"`
	URL         string `json:"url,omitempty"`
}

// EventMetadata is implemented by exactly one payload type per EventType.
type EventMetadata interface {
	EventType() EventType
}

// PageViewMetadata accompanies page_view.
type PageViewMetadata struct {
	Path     string `json:"path,omitempty"`
	Referrer string `json:"referrer,omitempty"`
}

// AccountMetadata accompanies account_created.
type AccountMetadata struct {
	SignupMethod string `json:"signup_method,omitempty"`
}

// ProfileMetadata accompanies recipient_profile_created.
type ProfileMetadata struct {
	ProfileID    string `json:"profile_id,omitempty"`
	Relationship string `json:"relationship,omitempty"`
}

// QuestionnaireMetadata accompanies questionnaire_completed.
type QuestionnaireMetadata struct {
	ProfileID string `json:"profile_id,omitempty"`
	Occasion  string `json:"occasion,omitempty"`
}

// IdeasGeneratedMetadata accompanies gift_ideas_generated. One event may carry
// several ideas.
type IdeasGeneratedMetadata struct {
	ProfileID string               `json:"profile_id,omitempty"`
	Ideas     []RecommendationItem `json:"ideas,omitempty"`
}

// IdeaSavedMetadata accompanies gift_idea_saved.
type IdeaSavedMetadata struct {
	IdeaID      string `json:"idea_id,omitempty"`
	ProductName string `json:"product_name,omitempty"`
	Category    string `json:"category,omitempty"`
	ShopName    string `json:"shop_name,omitempty"`
}

// OutboundClickMetadata accompanies outbound_link_clicked.
type OutboundClickMetadata struct {
	IdeaID   string `json:"idea_id,omitempty"`
	URL      string `json:"url,omitempty"`
	ShopName string `json:"shop_name,omitempty"`
	Category string `json:"category,omitempty"`
}

// ReminderMetadata accompanies reminder_created.
type ReminderMetadata struct {
	ProfileID string `json:"profile_id,omitempty"`
	Occasion  string `json:"occasion,omitempty"`
	RemindOn  string `json:"remind_on,omitempty"` // YYYY-MM-DD
}

func (PageViewMetadata) EventType() EventType       { return EventPageView }
func (AccountMetadata) EventType() EventType        { return EventAccountCreated }
func (ProfileMetadata) EventType() EventType        { return EventProfileCreated }
func (QuestionnaireMetadata) EventType() EventType  { return EventQuestionnaireCompleted }
func (IdeasGeneratedMetadata) EventType() EventType { return EventIdeasGenerated }
func (IdeaSavedMetadata) EventType() EventType      { return EventIdeaSaved }
func (OutboundClickMetadata) EventType() EventType  { return EventOutboundClick }
func (ReminderMetadata) EventType() EventType       { return EventReminderCreated }

// Ideas returns the generated ideas, or nil for any other event.
func (e *Event) Ideas() []RecommendationItem {
	if md, ok := e.Metadata.(IdeasGeneratedMetadata); ok {
		return md.Ideas
	}
	return nil
}

// IdeaID returns the referenced idea for save and click events.
func (e *Event) IdeaID() string {
	switch md := e.Metadata.(type) {
	case IdeaSavedMetadata:
		return md.IdeaID
	case OutboundClickMetadata:
		return md.IdeaID
	}
	return ""
}

// Category returns the product category for save and click events.
func (e *Event) Category() string {
	switch md := e.Metadata.(type) {
	case IdeaSavedMetadata:
		return md.Category
	case OutboundClickMetadata:
		return md.Category
	}
	return ""
}

// wireEvent is the JSON shape of Event; metadata stays raw until the type is known.
type wireEvent struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id,omitempty"`
	SessionID string          `json:"session_id"`
	Type      EventType       `json:"event_type"`
	Timestamp time.Time       `json:"timestamp"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
}

// UnmarshalJSON decodes the metadata object into the payload type matching event_type.
func (e *Event) UnmarshalJSON(data []byte) error {
	var w wireEvent
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	md, err := DecodeMetadata(w.Type, w.Metadata)
	if err != nil {
		return err
	}
	*e = Event{
		ID:        w.ID,
		UserID:    w.UserID,
		SessionID: w.SessionID,
		Type:      w.Type,
		Timestamp: w.Timestamp,
		Metadata:  md,
	}
	return nil
}

// DecodeMetadata parses a raw metadata object for the given event type.
// Missing fields are left at their zero value; an empty or null payload
// yields the zero payload.
func DecodeMetadata(t EventType, raw []byte) (EventMetadata, error) {
	if len(raw) == 0 || string(raw) == "null" {
		raw = []byte("{}")
	}
	switch t {
	case EventPageView:
		return decodeInto[PageViewMetadata](raw)
	case EventAccountCreated:
		return decodeInto[AccountMetadata](raw)
	case EventProfileCreated:
		return decodeInto[ProfileMetadata](raw)
	case EventQuestionnaireCompleted:
		return decodeInto[QuestionnaireMetadata](raw)
	case EventIdeasGenerated:
		return decodeInto[IdeasGeneratedMetadata](raw)
	case EventIdeaSaved:
		return decodeInto[IdeaSavedMetadata](raw)
	case EventOutboundClick:
		return decodeInto[OutboundClickMetadata](raw)
	case EventReminderCreated:
		return decodeInto[ReminderMetadata](raw)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEventType, t)
	}
}

func decodeInto[T EventMetadata](raw []byte) (EventMetadata, error) {
	var md T
	if err := json.Unmarshal(raw, &md); err != nil {
		return nil, fmt.Errorf("failed to decode %s metadata: %w", md.EventType(), err)
	}
	return md, nil
}

// EncodeMetadata returns the JSON object for md, "{}" when md is nil.
func EncodeMetadata(md EventMetadata) ([]byte, error) {
	if md == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(md)
}
