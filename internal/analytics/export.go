// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

package analytics

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/maisonmai/analytics/internal/models"
)

// ErrUnknownExportView is returned for an export view name not in ExportViews.
var ErrUnknownExportView = errors.New("unknown export view")

// Export view names.
const (
	ViewFunnel     = "funnel"
	ViewKPIs       = "kpis"
	ViewRetention  = "retention"
	ViewDaily      = "daily"
	ViewCategories = "categories"
	ViewProducts   = "products"
)

// ExportViews lists the views that can be exported.
func ExportViews() []string {
	return []string{ViewFunnel, ViewKPIs, ViewRetention, ViewDaily, ViewCategories, ViewProducts}
}

// ExportTable is a flat, CSV-ready view of one result set. Rows map header
// names to primitive values (string, int, int64, float64, bool).
type ExportTable struct {
	Filename string
	Headers  []string
	Rows     []map[string]any
}

// Export shapes one dashboard view into an ExportTable.
func Export(view string, d *models.Dashboard) (ExportTable, error) {
	switch view {
	case ViewFunnel:
		return FunnelExport(d.Funnel, d.Range), nil
	case ViewKPIs:
		return KPIExport(d.KPIs, d.Range), nil
	case ViewRetention:
		return RetentionExport(d.Retention, d.Range), nil
	case ViewDaily:
		return DailyExport(d.Daily, d.Range), nil
	case ViewCategories:
		return CategoryExport(d.Categories, d.Range), nil
	case ViewProducts:
		return ProductExport(d.Products, d.Range), nil
	default:
		return ExportTable{}, fmt.Errorf("%w: %q", ErrUnknownExportView, view)
	}
}

func exportFilename(view string, r models.DateRange) string {
	return fmt.Sprintf("maisonmai-%s-%s.csv", view, r.String())
}

// FunnelExport shapes funnel stages. The first stage has no dropoff and
// renders it as "-".
func FunnelExport(stages []models.FunnelStage, r models.DateRange) ExportTable {
	t := ExportTable{
		Filename: exportFilename(ViewFunnel, r),
		Headers:  []string{"stage", "users", "percent", "dropoff", "dropoff_percent"},
	}
	for _, s := range stages {
		row := map[string]any{
			"stage":           s.Stage,
			"users":           s.Users,
			"percent":         oneDecimal(s.Percent),
			"dropoff":         "-",
			"dropoff_percent": "-",
		}
		if s.HasDropoff {
			row["dropoff"] = s.Dropoff
			row["dropoff_percent"] = oneDecimal(s.DropoffPercent)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// KPIExport shapes the KPI set in display order.
func KPIExport(kpis models.KPISet, r models.DateRange) ExportTable {
	t := ExportTable{
		Filename: exportFilename(ViewKPIs, r),
		Headers:  []string{"kpi", "value", "previous", "change"},
	}
	for _, k := range kpis.List() {
		t.Rows = append(t.Rows, map[string]any{
			"kpi":      k.Name,
			"value":    k.Value,
			"previous": k.Previous,
			"change":   oneDecimal(k.Change),
		})
	}
	return t
}

// RetentionExport shapes the three cohorts as one row each.
func RetentionExport(s models.RetentionStats, r models.DateRange) ExportTable {
	t := ExportTable{
		Filename: exportFilename(ViewRetention, r),
		Headers:  []string{"cohort", "users", "total_users", "rate"},
	}
	for _, c := range []struct {
		name  string
		users int
		rate  string
	}{
		{"returning", s.ReturningUsers, s.ReturnRate},
		{"multi_profile", s.MultiProfileUsers, s.MultiProfileRate},
		{"multi_session_ideas", s.MultiSessionIdeaUsers, s.MultiSessionIdeaRate},
	} {
		t.Rows = append(t.Rows, map[string]any{
			"cohort":      c.name,
			"users":       c.users,
			"total_users": s.TotalUsers,
			"rate":        c.rate,
		})
	}
	return t
}

// DailyExport shapes the daily series.
func DailyExport(series []models.DailyMetric, r models.DateRange) ExportTable {
	t := ExportTable{
		Filename: exportFilename(ViewDaily, r),
		Headers:  []string{"date", "active_users", "page_views", "ideas_generated", "outbound_clicks"},
	}
	for _, m := range series {
		t.Rows = append(t.Rows, map[string]any{
			"date":            m.Date,
			"active_users":    m.ActiveUsers,
			"page_views":      m.PageViews,
			"ideas_generated": m.IdeasGenerated,
			"outbound_clicks": m.OutboundClicks,
		})
	}
	return t
}

// CategoryExport shapes category stats.
func CategoryExport(stats []models.CategoryStat, r models.DateRange) ExportTable {
	t := ExportTable{
		Filename: exportFilename(ViewCategories, r),
		Headers:  []string{"category", "clicks", "saves", "click_through_rate"},
	}
	for _, s := range stats {
		t.Rows = append(t.Rows, map[string]any{
			"category":           s.Category,
			"clicks":             s.Clicks,
			"saves":              s.Saves,
			"click_through_rate": s.ClickThroughRate,
		})
	}
	return t
}

// ProductExport shapes product stats.
func ProductExport(stats []models.ProductStat, r models.DateRange) ExportTable {
	t := ExportTable{
		Filename: exportFilename(ViewProducts, r),
		Headers: []string{"idea_id", "product_name", "category", "shop_name",
			"recommended_count", "saves", "clicks", "save_rate", "click_through_rate"},
	}
	for _, s := range stats {
		t.Rows = append(t.Rows, map[string]any{
			"idea_id":            s.IdeaID,
			"product_name":       s.ProductName,
			"category":           s.Category,
			"shop_name":          s.ShopName,
			"recommended_count":  s.RecommendedCount,
			"saves":              s.Saves,
			"clicks":             s.Clicks,
			"save_rate":          s.SaveRate,
			"click_through_rate": s.ClickThroughRate,
		})
	}
	return t
}

// WriteCSV writes the header line followed by one line per row. Fields that
// contain a comma, quote or line break are quoted.
func WriteCSV(w io.Writer, t ExportTable) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Headers); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	record := make([]string, len(t.Headers))
	for i, row := range t.Rows {
		for j, h := range t.Headers {
			record[j] = formatCell(row[h])
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}

func oneDecimal(f float64) string {
	return decimal.NewFromFloat(f).StringFixed(1)
}
