package service

import (
	"sort"
	"time"

	"tiemnuoc/pkg/shop"
	"tiemnuoc/staff-svc/internal/domain"
)

// period is a half-open time window [from, to).
type period struct {
	from, to time.Time
}

func (p period) contains(t time.Time) bool {
	return !t.IsZero() && !t.Before(p.from) && t.Before(p.to)
}

// periods returns the window containing now for timeRange and the one before
// it. Unknown ranges fall back to day.
func periods(timeRange string, now time.Time) (current, previous period) {
	now = now.Local()
	y, m, d := now.Date()
	loc := now.Location()

	switch timeRange {
	case domain.RangeWeek:
		end := time.Date(y, m, d+1, 0, 0, 0, 0, loc)
		start := end.AddDate(0, 0, -7)
		return period{start, end}, period{start.AddDate(0, 0, -7), start}
	case domain.RangeMonth:
		start := time.Date(y, m, 1, 0, 0, 0, 0, loc)
		return period{start, start.AddDate(0, 1, 0)}, period{start.AddDate(0, -1, 0), start}
	case domain.RangeYear:
		start := time.Date(y, 1, 1, 0, 0, 0, 0, loc)
		return period{start, start.AddDate(1, 0, 0)}, period{start.AddDate(-1, 0, 0), start}
	}
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return period{start, start.AddDate(0, 0, 1)}, period{start.AddDate(0, 0, -1), start}
}

func growth(current, previous shop.VND) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return float64(current-previous) / float64(previous) * 100
}

func seriesLabel(t time.Time, timeRange string) string {
	t = t.Local()
	switch timeRange {
	case domain.RangeWeek, domain.RangeMonth:
		return t.Format("02/01")
	case domain.RangeYear:
		return t.Format("01/2006")
	}
	return t.Format("15:00")
}

func seriesBucket(t time.Time, timeRange string) time.Time {
	t = t.Local()
	y, m, d := t.Date()
	switch timeRange {
	case domain.RangeWeek, domain.RangeMonth:
		return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	case domain.RangeYear:
		return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
	}
	return time.Date(y, m, d, t.Hour(), 0, 0, 0, t.Location())
}

// ComputeDashboard builds the revenue board. Revenue counts completed orders
// only; cost counts expense transactions only.
func ComputeDashboard(orders []shop.Order, txs []shop.Transaction, timeRange string, now time.Time) domain.Dashboard {
	switch timeRange {
	case domain.RangeDay, domain.RangeWeek, domain.RangeMonth, domain.RangeYear:
	default:
		timeRange = domain.RangeDay
	}
	cur, prev := periods(timeRange, now)

	dash := domain.Dashboard{
		Range:            timeRange,
		ExpenseBreakdown: []domain.CategoryAmount{},
		RevenueSeries:    []domain.SeriesPoint{},
		StatusCounts:     make(map[shop.OrderStatus]int),
	}

	var prevRevenue, prevCost shop.VND
	buckets := make(map[time.Time]shop.VND)
	for _, o := range orders {
		placed := o.PlacedAt()
		if cur.contains(placed) {
			dash.StatusCounts[o.OrderStatus]++
		}
		if o.OrderStatus != shop.StatusCompleted {
			continue
		}
		switch {
		case cur.contains(placed):
			dash.Revenue += o.Total
			dash.OrderCount++
			buckets[seriesBucket(placed, timeRange)] += o.Total
		case prev.contains(placed):
			prevRevenue += o.Total
		}
	}

	byCategory := make(map[string]shop.VND)
	var categories []string
	for _, tx := range txs {
		if tx.Type != shop.TransactionExpense {
			continue
		}
		at := tx.RecordedAt()
		switch {
		case cur.contains(at):
			dash.Cost += tx.Amount
			if _, seen := byCategory[tx.Category]; !seen {
				categories = append(categories, tx.Category)
			}
			byCategory[tx.Category] += tx.Amount
		case prev.contains(at):
			prevCost += tx.Amount
		}
	}

	dash.Profit = dash.Revenue - dash.Cost
	dash.Growth = growth(dash.Revenue, prevRevenue)
	dash.CostGrowth = growth(dash.Cost, prevCost)

	for _, c := range categories {
		dash.ExpenseBreakdown = append(dash.ExpenseBreakdown, domain.CategoryAmount{Name: c, Value: byCategory[c]})
	}

	keys := make([]time.Time, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })
	for _, k := range keys {
		dash.RevenueSeries = append(dash.RevenueSeries, domain.SeriesPoint{Name: seriesLabel(k, timeRange), Revenue: buckets[k]})
	}
	return dash
}
