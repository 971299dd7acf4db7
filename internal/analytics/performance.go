// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

package analytics

import (
	"sort"

	"github.com/maisonmai/analytics/internal/models"
)

// UnknownCategory collects saves and clicks that carry no category.
const UnknownCategory = "unknown"

// ComputeCategoryStats tallies outbound clicks and saves per metadata
// category. Click-through rate is clicks per save; it is "0.0" when a
// category has no saves. Sorted by clicks descending, then category name.
func ComputeCategoryStats(events []models.Event) []models.CategoryStat {
	byCategory := make(map[string]*models.CategoryStat)
	get := func(category string) *models.CategoryStat {
		if category == "" {
			category = UnknownCategory
		}
		s, ok := byCategory[category]
		if !ok {
			s = &models.CategoryStat{Category: category}
			byCategory[category] = s
		}
		return s
	}

	for i := range events {
		e := &events[i]
		switch e.Type {
		case models.EventOutboundClick:
			get(e.Category()).Clicks++
		case models.EventIdeaSaved:
			get(e.Category()).Saves++
		}
	}

	stats := make([]models.CategoryStat, 0, len(byCategory))
	for _, s := range byCategory {
		s.ClickThroughRate = FormatRate(s.Clicks, s.Saves)
		stats = append(stats, *s)
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Clicks != stats[j].Clicks {
			return stats[i].Clicks > stats[j].Clicks
		}
		return stats[i].Category < stats[j].Category
	})
	return stats
}

// ComputeProductStats builds one record per idea first seen in a
// gift_ideas_generated event and joins saves and clicks to it by idea id.
// Saves and clicks referencing ideas that were never generated are ignored.
// Sorted by clicks, then saves, both descending, then first-seen order.
func ComputeProductStats(events []models.Event) []models.ProductStat {
	byIdea := make(map[string]*models.ProductStat)
	var order []string

	for i := range events {
		for _, idea := range events[i].Ideas() {
			if idea.IdeaID == "" {
				continue
			}
			p, ok := byIdea[idea.IdeaID]
			if !ok {
				p = &models.ProductStat{
					IdeaID:      idea.IdeaID,
					ProductName: idea.ProductName,
					Category:    idea.Category,
					ShopName:    idea.ShopName,
				}
				byIdea[idea.IdeaID] = p
				order = append(order, idea.IdeaID)
			}
			p.RecommendedCount++
		}
	}

	for i := range events {
		e := &events[i]
		if e.Type != models.EventIdeaSaved && e.Type != models.EventOutboundClick {
			continue
		}
		p, ok := byIdea[e.IdeaID()]
		if !ok {
			continue
		}
		if e.Type == models.EventIdeaSaved {
			p.Saves++
		} else {
			p.Clicks++
		}
	}

	stats := make([]models.ProductStat, 0, len(order))
	for _, id := range order {
		p := byIdea[id]
		p.SaveRate = FormatRate(p.Saves, p.RecommendedCount)
		p.ClickThroughRate = FormatRate(p.Clicks, p.Saves)
		stats = append(stats, *p)
	}
	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].Clicks != stats[j].Clicks {
			return stats[i].Clicks > stats[j].Clicks
		}
		return stats[i].Saves > stats[j].Saves
	})
	return stats
}
