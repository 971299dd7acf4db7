// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

package analytics

import (
	"sort"

	"github.com/maisonmai/analytics/internal/models"
)

// userActivity is the per-user history retention is derived from.
type userActivity struct {
	firstDate    string
	activeDates  distinct
	profiles     int
	ideaSessions distinct
}

// buildUserActivity groups events by user. Events without a user are skipped.
func buildUserActivity(events []models.Event) map[string]*userActivity {
	users := make(map[string]*userActivity)
	for i := range events {
		e := &events[i]
		if e.UserID == "" {
			continue
		}
		ua, ok := users[e.UserID]
		if !ok {
			ua = &userActivity{activeDates: distinct{}, ideaSessions: distinct{}}
			users[e.UserID] = ua
		}
		date := DateKey(e.Timestamp)
		if ua.firstDate == "" || date < ua.firstDate {
			ua.firstDate = date
		}
		ua.activeDates.add(date)
		switch e.Type {
		case models.EventProfileCreated:
			ua.profiles++
		case models.EventIdeasGenerated:
			ua.ideaSessions.add(e.SessionID)
		}
	}
	return users
}

// ComputeRetention derives three independent cohorts over the distinct users
// in events: returning (active on more than one date), multi-profile (more
// than one profile created) and multi-session ideas (ideas generated in more
// than one session). A user may belong to any combination of them.
func ComputeRetention(events []models.Event) models.RetentionStats {
	users := buildUserActivity(events)

	var stats models.RetentionStats
	firstSeen := make(map[string]int)
	for _, ua := range users {
		if len(ua.activeDates) > 1 {
			stats.ReturningUsers++
		}
		if ua.profiles > 1 {
			stats.MultiProfileUsers++
		}
		if len(ua.ideaSessions) > 1 {
			stats.MultiSessionIdeaUsers++
		}
		firstSeen[ua.firstDate]++
	}

	stats.TotalUsers = len(users)
	stats.ReturnRate = FormatRate(stats.ReturningUsers, stats.TotalUsers)
	stats.MultiProfileRate = FormatRate(stats.MultiProfileUsers, stats.TotalUsers)
	stats.MultiSessionIdeaRate = FormatRate(stats.MultiSessionIdeaUsers, stats.TotalUsers)

	stats.NewUsersByDate = make([]models.DateCount, 0, len(firstSeen))
	for date, n := range firstSeen {
		stats.NewUsersByDate = append(stats.NewUsersByDate, models.DateCount{Date: date, Users: n})
	}
	sort.Slice(stats.NewUsersByDate, func(i, j int) bool {
		return stats.NewUsersByDate[i].Date < stats.NewUsersByDate[j].Date
	})
	return stats
}
