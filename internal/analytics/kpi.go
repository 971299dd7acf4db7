// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

package analytics

import (
	"github.com/maisonmai/analytics/internal/models"
)

// KPI names, as used in exports and API responses.
const (
	KPITotalUsers              = "totalUsers"
	KPIPageViews               = "pageViews"
	KPIProfilesCreated         = "profilesCreated"
	KPIQuestionnairesCompleted = "questionnairesCompleted"
	KPIIdeasGenerated          = "ideasGenerated"
	KPISaves                   = "saves"
	KPIClicks                  = "clicks"
	KPIReminders               = "reminders"
)

// PercentChange returns the period-over-period change in percent.
// previous == 0 yields 100 when current grew and 0 otherwise.
func PercentChange(current, previous float64) float64 {
	if previous != 0 {
		return ((current - previous) / previous) * 100
	}
	if current > 0 {
		return 100
	}
	return 0
}

type kpiCounts struct {
	totalUsers              int64
	pageViews               int64
	profilesCreated         int64
	questionnairesCompleted int64
	ideasGenerated          int64
	saves                   int64
	clicks                  int64
	reminders               int64
}

// countsFor selects the event log or the snapshot per the Source rule.
func countsFor(src Source) kpiCounts {
	if src.Kind() == models.SourceAggregateSnapshot {
		return countsFromSnapshot(*src.Snapshot)
	}
	return countsFromEvents(src.Events)
}

func countsFromEvents(events []models.Event) kpiCounts {
	var c kpiCounts
	users := distinct{}
	for i := range events {
		e := &events[i]
		users.add(e.UserID)
		switch e.Type {
		case models.EventPageView:
			c.pageViews++
		case models.EventProfileCreated:
			c.profilesCreated++
		case models.EventQuestionnaireCompleted:
			c.questionnairesCompleted++
		case models.EventIdeasGenerated:
			c.ideasGenerated += int64(len(e.Ideas()))
		case models.EventIdeaSaved:
			c.saves++
		case models.EventOutboundClick:
			c.clicks++
		case models.EventReminderCreated:
			c.reminders++
		}
	}
	c.totalUsers = int64(len(users))
	return c
}

// countsFromSnapshot maps entity counts onto KPIs. There is no page view
// entity, and saved ideas are the persisted gift ideas.
func countsFromSnapshot(s models.AggregateCounts) kpiCounts {
	return kpiCounts{
		totalUsers:              s.TotalUsers,
		pageViews:               0,
		profilesCreated:         s.TotalProfiles,
		questionnairesCompleted: s.TotalQuestionnaires,
		ideasGenerated:          s.TotalGiftIdeas,
		saves:                   s.TotalGiftIdeas,
		clicks:                  s.TotalPartnerClicks,
		reminders:               s.TotalReminders,
	}
}

func compareKPI(name string, current, previous int64) models.KPI {
	return models.KPI{
		Name:     name,
		Value:    current,
		Previous: previous,
		Change:   PercentChange(float64(current), float64(previous)),
	}
}

// ComputeKPIs builds the KPI set for current against previous. Each period
// independently picks its event log or snapshot.
func ComputeKPIs(current, previous Source) models.KPISet {
	cur, prev := countsFor(current), countsFor(previous)
	return models.KPISet{
		TotalUsers:              compareKPI(KPITotalUsers, cur.totalUsers, prev.totalUsers),
		PageViews:               compareKPI(KPIPageViews, cur.pageViews, prev.pageViews),
		ProfilesCreated:         compareKPI(KPIProfilesCreated, cur.profilesCreated, prev.profilesCreated),
		QuestionnairesCompleted: compareKPI(KPIQuestionnairesCompleted, cur.questionnairesCompleted, prev.questionnairesCompleted),
		IdeasGenerated:          compareKPI(KPIIdeasGenerated, cur.ideasGenerated, prev.ideasGenerated),
		Saves:                   compareKPI(KPISaves, cur.saves, prev.saves),
		Clicks:                  compareKPI(KPIClicks, cur.clicks, prev.clicks),
		Reminders:               compareKPI(KPIReminders, cur.reminders, prev.reminders),
		Source:                  current.Kind(),
		PreviousSource:          previous.Kind(),
	}
}
