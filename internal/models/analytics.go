// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

package models

import (
	"time"
)

// DateLayout is the calendar-day format used for ranges, buckets and exports.
const DateLayout = "2006-01-02"

// DateRange is an inclusive window of whole UTC days.
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Days returns the number of calendar days covered, inclusive of both ends.
func (r DateRange) Days() int {
	return int(r.To.Sub(r.From).Hours()/24) + 1
}

// Bounds returns the range as optional bounds for store queries and filtering.
func (r DateRange) Bounds() (from, to *time.Time) {
	f, t := r.From, r.To
	return &f, &t
}

// String renders the range as "from_to" using DateLayout.
func (r DateRange) String() string {
	return r.From.Format(DateLayout) + "_" + r.To.Format(DateLayout)
}

// DataSource names where a period's numbers came from.
type DataSource string

const (
	// SourceEventLog means metrics were derived from raw events.
	SourceEventLog DataSource = "event_log"
	// SourceAggregateSnapshot means metrics were read from persisted entity counts.
	SourceAggregateSnapshot DataSource = "aggregate_snapshot"
)

// AggregateCounts are precomputed entity counts for a range, used when no
// event log exists for that window.
type AggregateCounts struct {
	TotalUsers          int64 `json:"total_users"`
	TotalProfiles       int64 `json:"total_profiles"`
	TotalPeople         int64 `json:"total_people"`
	TotalGiftIdeas      int64 `json:"total_gift_ideas"`
	TotalQuestionnaires int64 `json:"total_questionnaires"`
	TotalReminders      int64 `json:"total_reminders"`
	TotalPartnerClicks  int64 `json:"total_partner_clicks"`
}

// FunnelStage is the reach of one step of the user journey.
// Percent is relative to the account_created stage and may exceed 100.
type FunnelStage struct {
	Stage          string    `json:"stage"`
	EventType      EventType `json:"event_type"`
	Users          int       `json:"users"`
	Percent        float64   `json:"percent"`
	Dropoff        int       `json:"dropoff"`
	DropoffPercent float64   `json:"dropoff_percent"`
	HasDropoff     bool      `json:"has_dropoff"` // false for the first stage
}

// KPI is a current-period value with its change against the comparison period.
type KPI struct {
	Name     string  `json:"name"`
	Value    int64   `json:"value"`
	Previous int64   `json:"previous"`
	Change   float64 `json:"change"` // percent
}

// KPISet holds the fixed dashboard KPIs.
type KPISet struct {
	TotalUsers              KPI        `json:"total_users"`
	PageViews               KPI        `json:"page_views"`
	ProfilesCreated         KPI        `json:"profiles_created"`
	QuestionnairesCompleted KPI        `json:"questionnaires_completed"`
	IdeasGenerated          KPI        `json:"ideas_generated"`
	Saves                   KPI        `json:"saves"`
	Clicks                  KPI        `json:"clicks"`
	Reminders               KPI        `json:"reminders"`
	Source                  DataSource `json:"source"`
	PreviousSource          DataSource `json:"previous_source"`
}

// List returns the KPIs in display order.
func (s KPISet) List() []KPI {
	return []KPI{
		s.TotalUsers,
		s.PageViews,
		s.ProfilesCreated,
		s.QuestionnairesCompleted,
		s.IdeasGenerated,
		s.Saves,
		s.Clicks,
		s.Reminders,
	}
}

// DailyMetric is one UTC calendar day of activity.
type DailyMetric struct {
	Date           string `json:"date"`
	ActiveUsers    int    `json:"active_users"`
	PageViews      int    `json:"page_views"`
	IdeasGenerated int    `json:"ideas_generated"`
	OutboundClicks int    `json:"outbound_clicks"`
}

// DateCount is a number of users attached to a calendar day.
type DateCount struct {
	Date  string `json:"date"`
	Users int    `json:"users"`
}

// RetentionStats holds three independent cohorts over the same user universe.
// Rates are percentages with one decimal, "0.0" when there are no users.
type RetentionStats struct {
	TotalUsers            int         `json:"total_users"`
	ReturningUsers        int         `json:"returning_users"`
	MultiProfileUsers     int         `json:"multi_profile_users"`
	MultiSessionIdeaUsers int         `json:"multi_session_idea_users"`
	ReturnRate            string      `json:"return_rate"`
	MultiProfileRate      string      `json:"multi_profile_rate"`
	MultiSessionIdeaRate  string      `json:"multi_session_idea_rate"`
	NewUsersByDate        []DateCount `json:"new_users_by_date"`
}

// CategoryStat is click and save volume for one product category.
// ClickThroughRate is clicks per save, as a percentage.
type CategoryStat struct {
	Category         string `json:"category"`
	Clicks           int    `json:"clicks"`
	Saves            int    `json:"saves"`
	ClickThroughRate string `json:"click_through_rate"`
}

// ProductStat is the performance of a single recommended idea.
type ProductStat struct {
	IdeaID           string `json:"idea_id"`
	ProductName      string `json:"product_name"`
	Category         string `json:"category"`
	ShopName         string `json:"shop_name"`
	RecommendedCount int    `json:"recommended_count"`
	Saves            int    `json:"saves"`
	Clicks           int    `json:"clicks"`
	SaveRate         string `json:"save_rate"`
	ClickThroughRate string `json:"click_through_rate"`
}

// EngagementStats summarizes how intensely active users use the product.
type EngagementStats struct {
	TotalEvents        int     `json:"total_events"`
	ActiveUsers        int     `json:"active_users"`
	Sessions           int     `json:"sessions"`
	GenerationEvents   int     `json:"generation_events"`
	EventsPerUser      float64 `json:"events_per_user"`
	IdeasPerGeneration float64 `json:"ideas_per_generation"`
	AvgActiveDays      float64 `json:"avg_active_days"`
}

// Dashboard is every analytics view for one range and its comparison range.
// Degraded is set when a store failure was answered with empty data.
type Dashboard struct {
	Range       DateRange       `json:"range"`
	Comparison  DateRange       `json:"comparison"`
	Source      DataSource      `json:"source"`
	KPIs        KPISet          `json:"kpis"`
	Funnel      []FunnelStage   `json:"funnel"`
	Retention   RetentionStats  `json:"retention"`
	Daily       []DailyMetric   `json:"daily"`
	Categories  []CategoryStat  `json:"categories"`
	Products    []ProductStat   `json:"products"`
	Engagement  EngagementStats `json:"engagement"`
	GeneratedAt time.Time       `json:"generated_at"`
	Degraded    bool            `json:"degraded,omitempty"`
}
