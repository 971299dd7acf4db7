// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

package analytics

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/maisonmai/analytics/internal/models"
)

var testSeq atomic.Int64

// day returns midnight UTC of 2026-03-<d> plus an optional offset.
func day(d int, offset ...time.Duration) time.Time {
	t := time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
	for _, o := range offset {
		t = t.Add(o)
	}
	return t
}

func ptr(t time.Time) *time.Time { return &t }

// ev builds an event with the zero metadata payload for its type.
func ev(user, session string, et models.EventType, ts time.Time) models.Event {
	md, err := models.DecodeMetadata(et, nil)
	if err != nil {
		panic(err)
	}
	return evMeta(user, session, ts, md)
}

func evMeta(user, session string, ts time.Time, md models.EventMetadata) models.Event {
	return models.Event{
		ID:        fmt.Sprintf("evt-%d", testSeq.Add(1)),
		UserID:    user,
		SessionID: session,
		Type:      md.EventType(),
		Timestamp: ts,
		Metadata:  md,
	}
}

func generated(user, session string, ts time.Time, ideas ...models.RecommendationItem) models.Event {
	return evMeta(user, session, ts, models.IdeasGeneratedMetadata{Ideas: ideas})
}

func saved(user, session string, ts time.Time, ideaID, category string) models.Event {
	return evMeta(user, session, ts, models.IdeaSavedMetadata{IdeaID: ideaID, Category: category})
}

func clicked(user, session string, ts time.Time, ideaID, category string) models.Event {
	return evMeta(user, session, ts, models.OutboundClickMetadata{IdeaID: ideaID, Category: category})
}

func idea(id, category string) models.RecommendationItem {
	return models.RecommendationItem{IdeaID: id, ProductName: "Product " + id, Category: category, ShopName: "Shop"}
}

func assertEqual[T comparable](t *testing.T, name string, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertFloat(t *testing.T, name string, got, want float64) {
	t.Helper()
	const epsilon = 1e-9
	if got-want > epsilon || want-got > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func eventIDs(events []models.Event) []string {
	ids := make([]string, len(events))
	for i := range events {
		ids[i] = events[i].ID
	}
	return ids
}

func stageByType(t *testing.T, stages []models.FunnelStage, et models.EventType) models.FunnelStage {
	t.Helper()
	for _, s := range stages {
		if s.EventType == et {
			return s
		}
	}
	t.Fatalf("no funnel stage for %s", et)
	return models.FunnelStage{}
}

func categoryByName(stats []models.CategoryStat, name string) (models.CategoryStat, bool) {
	for _, s := range stats {
		if s.Category == name {
			return s, true
		}
	}
	return models.CategoryStat{}, false
}
