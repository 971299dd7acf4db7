// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

package models

import "time"

// EntityKind names a persisted application record counted by AggregateCounts.
type EntityKind string

const (
	EntityUser          EntityKind = "user"
	EntityProfile       EntityKind = "profile"
	EntityPerson        EntityKind = "person"
	EntityGiftIdea      EntityKind = "gift_idea"
	EntityQuestionnaire EntityKind = "questionnaire"
	EntityReminder      EntityKind = "reminder"
	EntityPartnerClick  EntityKind = "partner_click"
)

// EntityRecord is the minimal view of an application row needed for counting.
type EntityRecord struct {
	ID        string     `json:"id"`
	Kind      EntityKind `json:"kind"`
	CreatedAt time.Time  `json:"created_at"`
}

// Add increments the counter matching kind. Unknown kinds are ignored.
func (c *AggregateCounts) Add(kind EntityKind, n int64) {
	switch kind {
	case EntityUser:
		c.TotalUsers += n
	case EntityProfile:
		c.TotalProfiles += n
	case EntityPerson:
		c.TotalPeople += n
	case EntityGiftIdea:
		c.TotalGiftIdeas += n
	case EntityQuestionnaire:
		c.TotalQuestionnaires += n
	case EntityReminder:
		c.TotalReminders += n
	case EntityPartnerClick:
		c.TotalPartnerClicks += n
	}
}
