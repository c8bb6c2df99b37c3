package timescale

import (
	"math"
	"time"
)

// Unit is a calendar unit of the ruler.
type Unit string

const (
	Millisecond Unit = "millisecond"
	Second      Unit = "second"
	Minute      Unit = "minute"
	Hour        Unit = "hour"
	Day         Unit = "day"
	Week        Unit = "week"
	Month       Unit = "month"
	Year        Unit = "year"
)

// Approximate unit lengths in milliseconds; months and years are stepped on
// the calendar when ticks are generated.
var unitMs = map[Unit]float64{
	Millisecond: 1,
	Second:      1000,
	Minute:      60 * 1000,
	Hour:        60 * 60 * 1000,
	Day:         24 * 60 * 60 * 1000,
	Week:        7 * 24 * 60 * 60 * 1000,
	Month:       30.44 * 24 * 60 * 60 * 1000,
	Year:        365.25 * 24 * 60 * 60 * 1000,
}

// Step is one rung of the ladder: Count units per tick.
type Step struct {
	Unit  Unit `json:"unit"`
	Count int  `json:"count"`
}

// Duration returns the approximate step length in milliseconds.
func (s Step) Duration() float64 {
	return unitMs[s.Unit] * float64(s.Count)
}

// Ladder lists steps from the finest to the coarsest.
var Ladder = []Step{
	{Millisecond, 1}, {Millisecond, 5}, {Millisecond, 10}, {Millisecond, 50}, {Millisecond, 100}, {Millisecond, 500},
	{Second, 1}, {Second, 5}, {Second, 15}, {Second, 30},
	{Minute, 1}, {Minute, 5}, {Minute, 15}, {Minute, 30},
	{Hour, 1}, {Hour, 3}, {Hour, 6}, {Hour, 12},
	{Day, 1}, {Day, 2},
	{Week, 1}, {Week, 2},
	{Month, 1}, {Month, 3}, {Month, 6},
	{Year, 1}, {Year, 5}, {Year, 10}, {Year, 50}, {Year, 100},
}

const (
	// MinMajorSpacing is the minimum pixel distance between labelled ticks.
	MinMajorSpacing = 80.0
	// MinMinorSpacing is the minimum pixel distance between minor ticks.
	MinMinorSpacing = 12.0
)

// Levels picks the major and minor steps for a scale in pixels per millisecond.
func Levels(scale float64) (major, minor Step) {
	majorIdx := len(Ladder) - 1
	for i, step := range Ladder {
		if step.Duration()*scale >= MinMajorSpacing {
			majorIdx = i
			break
		}
	}
	major = Ladder[majorIdx]
	minor = major
	for i := majorIdx - 1; i >= 0; i-- {
		step := Ladder[i]
		if step.Duration()*scale < MinMinorSpacing {
			break
		}
		if divides(step, major) {
			minor = step
		}
	}
	return major, minor
}

// divides reports whether fine ticks land on every coarse tick.
func divides(fine, coarse Step) bool {
	if fine.Unit == coarse.Unit {
		return coarse.Count%fine.Count == 0
	}
	switch coarse.Unit {
	case Year:
		return fine.Unit == Month || fine.Unit == Day && fine.Count == 1 || subDay(fine)
	case Month, Week:
		return fine.Unit == Day && fine.Count == 1 || subDay(fine)
	}
	d := coarse.Duration() / fine.Duration()
	return d == math.Trunc(d)
}

// subDay reports whether step evenly divides a day.
func subDay(step Step) bool {
	if step.Duration() >= unitMs[Day] {
		return false
	}
	d := unitMs[Day] / step.Duration()
	return d == math.Trunc(d)
}

// Tick is a ruler position.
type Tick struct {
	Time int64   `json:"time"`
	X    float64 `json:"x"`
	// Label is the primary text, Context the coarser second line.
	Label   string `json:"label,omitempty"`
	Context string `json:"context,omitempty"`
}

// Ticks returns the ticks of step across a viewport of width pixels.
func Ticks(m *Matrix, width float64, step Step, loc *time.Location) []Tick {
	if loc == nil {
		loc = time.UTC
	}
	start, end := m.VisibleRange(width)
	if end < start {
		start, end = end, start
	}
	if step.Duration()*m.Scale <= 0 {
		return nil
	}
	limit := 2*int(width/math.Max(step.Duration()*m.Scale, 1)) + 8
	var ret []Tick
	at := floor(time.UnixMilli(int64(math.Floor(start))).In(loc), step)
	for i := 0; i < limit && float64(at.UnixMilli()) <= end; i++ {
		ms := at.UnixMilli()
		if float64(ms) >= start {
			label, context := Format(at, step.Unit)
			ret = append(ret, Tick{Time: ms, X: m.TransformPoint(ms), Label: label, Context: context})
		}
		at = next(at, step)
	}
	return ret
}

// floor truncates t down to a multiple of step.
func floor(t time.Time, step Step) time.Time {
	y, mo, d := t.Date()
	loc := t.Location()
	switch step.Unit {
	case Year:
		y -= mod(y, step.Count)
		return time.Date(y, 1, 1, 0, 0, 0, 0, loc)
	case Month:
		m := int(mo) - 1
		m -= mod(m, step.Count)
		return time.Date(y, time.Month(m+1), 1, 0, 0, 0, 0, loc)
	case Week:
		day := time.Date(y, mo, d, 0, 0, 0, 0, loc)
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case Day:
		return time.Date(y, mo, d-mod(d-1, step.Count), 0, 0, 0, 0, loc)
	case Hour:
		return time.Date(y, mo, d, t.Hour()-mod(t.Hour(), step.Count), 0, 0, 0, loc)
	}
	ms := t.UnixMilli()
	size := int64(step.Duration())
	return time.UnixMilli(ms - modInt64(ms, size)).In(loc)
}

func next(t time.Time, step Step) time.Time {
	switch step.Unit {
	case Year:
		return t.AddDate(step.Count, 0, 0)
	case Month:
		return t.AddDate(0, step.Count, 0)
	case Week:
		return t.AddDate(0, 0, 7*step.Count)
	case Day:
		ret := t.AddDate(0, 0, step.Count)
		if ret.Month() != t.Month() && ret.Day() != 1 && step.Count > 1 {
			return time.Date(ret.Year(), ret.Month(), 1, 0, 0, 0, 0, ret.Location())
		}
		return ret
	}
	return t.Add(time.Duration(step.Duration()) * time.Millisecond)
}

// Format returns the primary and context labels of a tick at unit granularity.
func Format(t time.Time, unit Unit) (label, context string) {
	switch unit {
	case Millisecond:
		return t.Format("15:04:05.000"), t.Format("Jan 2, 2006")
	case Second:
		return t.Format("15:04:05"), t.Format("Jan 2, 2006")
	case Minute, Hour:
		return t.Format("15:04"), t.Format("Jan 2, 2006")
	case Day, Week:
		return t.Format("Jan 2"), t.Format("2006")
	case Month:
		return t.Format("Jan"), t.Format("2006")
	}
	return t.Format("2006"), ""
}

func mod(v, n int) int {
	if n <= 1 {
		return 0
	}
	return ((v % n) + n) % n
}

func modInt64(v, n int64) int64 {
	if n <= 1 {
		return 0
	}
	return ((v % n) + n) % n
}
