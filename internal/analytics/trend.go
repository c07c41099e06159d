package analytics

import (
	"fmt"
	"strings"
	"time"

	"spendwise/internal/core"
)

// Bucket is the width of a trend interval.
type Bucket int

const (
	Daily Bucket = iota
	Weekly
	Monthly
)

func (b Bucket) String() string {
	switch b {
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	default:
		return fmt.Sprintf("bucket(%d)", int(b))
	}
}

func ParseBucket(s string) (Bucket, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "daily", "day":
		return Daily, nil
	case "weekly", "week":
		return Weekly, nil
	case "monthly", "month":
		return Monthly, nil
	default:
		return Daily, fmt.Errorf("unknown bucket %s", s)
	}
}

// Start returns the first day of the bucket containing d. Weeks start on Monday.
func (b Bucket) Start(d core.Date) core.Date {
	switch b {
	case Weekly:
		offset := (int(d.Weekday()) + 6) % 7 // Monday = 0
		return d.AddDays(-offset)
	case Monthly:
		return d.Month().FirstDay()
	default:
		return d
	}
}

// Next returns the start of the bucket following the one starting at start.
func (b Bucket) Next(start core.Date) core.Date {
	switch b {
	case Weekly:
		return start.AddDays(7)
	case Monthly:
		return core.Date{Time: start.AddDate(0, 1, 0)}
	default:
		return start.AddDays(1)
	}
}

// Label formats a bucket start the way tables show it.
func (b Bucket) Label(start core.Date) string {
	if b == Monthly {
		return start.Month().String()
	}
	return start.String()
}

// TrendPoint is the total of one bucket.
type TrendPoint struct {
	Start core.Date
	Sum   core.Money
}

// Trend buckets expenses by b. The series is dense over the span of the data:
// every bucket from the earliest to the latest one holding an expense appears,
// with zero sums for gaps. Input is not filtered here.
func Trend(expenses []core.Expense, b Bucket) []TrendPoint {
	if len(expenses) == 0 {
		return []TrendPoint{}
	}

	sums := make(map[string]core.Money)
	first := b.Start(expenses[0].Date)
	last := first
	for _, e := range expenses {
		start := b.Start(e.Date)
		sums[start.String()] = sums[start.String()].Add(e.Amount)
		if start.Before(first.Time) {
			first = start
		}
		if start.After(last.Time) {
			last = start
		}
	}

	var points []TrendPoint
	for cur := first; !cur.After(last.Time); cur = b.Next(cur) {
		points = append(points, TrendPoint{Start: cur, Sum: sums[cur.String()]})
	}
	return points
}

// Range is an inclusive date window.
type Range struct {
	From, To core.Date
}

// Filter returns a filter restricted to the range.
func (r Range) Filter() Filter {
	return Filter{From: r.From, To: r.To}
}

// RangePreset names the chart windows offered by the dashboard.
type RangePreset string

const (
	CurrentMonth RangePreset = "current-month"
	Last30Days   RangePreset = "last-30-days"
	YearToDate   RangePreset = "year-to-date"
	AllTime      RangePreset = "all-time"
)

// RangeFor resolves a preset relative to today. AllTime is unbounded.
func RangeFor(p RangePreset, today core.Date) (Range, error) {
	switch p {
	case CurrentMonth, "":
		m := today.Month()
		return Range{From: m.FirstDay(), To: m.LastDay()}, nil
	case Last30Days:
		return Range{From: today.AddDays(-30)}, nil
	case YearToDate:
		return Range{From: core.NewDate(today.Year(), time.January, 1)}, nil
	case AllTime:
		return Range{}, nil
	default:
		return Range{}, fmt.Errorf("unknown range %q", p)
	}
}
