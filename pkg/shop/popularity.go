package shop

import "time"

// Drink popularity lives in Redis sorted sets keyed by drink name, scored by
// cups sold. agg-svc writes them, staff-svc reads them.
const (
	PopularityAllTimeKey = "popularity:alltime"
	PopularityDailyTTL   = 7 * 24 * time.Hour
)

func PopularityDailyKey(day time.Time) string {
	return "popularity:daily:" + day.Local().Format("2006-01-02")
}
