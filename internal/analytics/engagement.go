// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

package analytics

import (
	"github.com/maisonmai/analytics/internal/models"
)

// ComputeEngagement summarizes usage intensity. Per-user averages only count
// identified users; sessions include anonymous ones.
func ComputeEngagement(events []models.Event) models.EngagementStats {
	sessions := distinct{}
	generations, ideas, identified := 0, 0, 0
	for i := range events {
		e := &events[i]
		sessions.add(e.SessionID)
		if e.UserID != "" {
			identified++
		}
		if e.Type == models.EventIdeasGenerated {
			generations++
			ideas += len(e.Ideas())
		}
	}

	users := buildUserActivity(events)
	activeDays := 0
	for _, ua := range users {
		activeDays += len(ua.activeDates)
	}

	return models.EngagementStats{
		TotalEvents:        len(events),
		ActiveUsers:        len(users),
		Sessions:           len(sessions),
		GenerationEvents:   generations,
		EventsPerUser:      ratio(identified, len(users)),
		IdeasPerGeneration: ratio(ideas, generations),
		AvgActiveDays:      ratio(activeDays, len(users)),
	}
}
