// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

package analytics

import (
	"github.com/maisonmai/analytics/internal/models"
)

type funnelStep struct {
	label     string
	eventType models.EventType
}

// funnelSteps is the idealized journey. page_view is not a stage.
var funnelSteps = []funnelStep{
	{"Account Created", models.EventAccountCreated},
	{"Recipient Profile Created", models.EventProfileCreated},
	{"Questionnaire Completed", models.EventQuestionnaireCompleted},
	{"Gift Ideas Generated", models.EventIdeasGenerated},
	{"Gift Idea Saved", models.EventIdeaSaved},
	{"Outbound Link Clicked", models.EventOutboundClick},
	{"Reminder Created", models.EventReminderCreated},
}

// ComputeFunnel returns the seven funnel stages for src, from the event log
// or, when the log is empty, from the aggregate snapshot.
func ComputeFunnel(src Source) []models.FunnelStage {
	if src.Kind() == models.SourceAggregateSnapshot {
		return FunnelFromAggregates(*src.Snapshot)
	}
	return FunnelFromEvents(src.Events)
}

// FunnelFromEvents counts, per stage, the distinct users with at least one
// event of that type. Stages are reach counts, not a sequential gate, so a
// later stage can exceed an earlier one and percentages can exceed 100.
func FunnelFromEvents(events []models.Event) []models.FunnelStage {
	reach := make(map[models.EventType]distinct, len(funnelSteps))
	for _, step := range funnelSteps {
		reach[step.eventType] = distinct{}
	}
	for i := range events {
		if users, ok := reach[events[i].Type]; ok {
			users.add(events[i].UserID)
		}
	}

	counts := make([]int, len(funnelSteps))
	for i, step := range funnelSteps {
		counts[i] = len(reach[step.eventType])
	}
	return buildFunnel(counts)
}

// FunnelFromAggregates builds the funnel from persisted entity counts. These
// are entity totals rather than distinct users; persisted gift ideas stand in
// for both the generated and the saved stage.
func FunnelFromAggregates(c models.AggregateCounts) []models.FunnelStage {
	return buildFunnel([]int{
		int(c.TotalUsers),
		int(c.TotalProfiles),
		int(c.TotalQuestionnaires),
		int(c.TotalGiftIdeas),
		int(c.TotalGiftIdeas),
		int(c.TotalPartnerClicks),
		int(c.TotalReminders),
	})
}

func buildFunnel(counts []int) []models.FunnelStage {
	base := counts[0]
	stages := make([]models.FunnelStage, len(funnelSteps))
	for i, step := range funnelSteps {
		s := models.FunnelStage{
			Stage:     step.label,
			EventType: step.eventType,
			Users:     counts[i],
			Percent:   percentOf(counts[i], base),
		}
		if i > 0 {
			prev := counts[i-1]
			s.HasDropoff = true
			s.Dropoff = prev - counts[i]
			if prev > 0 {
				s.DropoffPercent = float64(s.Dropoff) / float64(prev) * 100
			}
		}
		stages[i] = s
	}
	return stages
}
