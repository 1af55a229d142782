package ui

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// maxEpochMillis bounds representable instants to +/-100,000,000 days.
const maxEpochMillis = 8.64e15

var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC1123,
	time.RFC1123Z,
	time.RFC850,
}

var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// FormatTimestamp renders value as "HH:MM • Mon D" in loc, with the month
// abbreviated for tag. value may be a time.Time, *time.Time, epoch
// milliseconds as any integer or float kind, or a date string. Unparseable
// values render as "". The zero time.Time also renders as "" since it marks an
// unset time; numeric 0 is the epoch and renders as a date.
func FormatTimestamp(value any, loc *time.Location, tag language.Tag) string {
	t, ok := toTime(value, loc)
	if !ok {
		return ""
	}
	if loc == nil {
		loc = time.Local
	}
	t = t.In(loc)
	return fmt.Sprintf("%02d:%02d • %s %d", t.Hour(), t.Minute(), monthAbbrev(t.Month(), tag), t.Day())
}

func monthAbbrev(month time.Month, tag language.Tag) string {
	english := month.String()[:3]
	key := "ui.month." + strings.ToLower(english)
	if localized := message.NewPrinter(tag).Sprintf(key); localized != key {
		return localized
	}
	return english
}

// FormatTimestamp formats value in the local time zone using the kit locale.
func (k *Kit) FormatTimestamp(value any) string {
	return FormatTimestamp(value, time.Local, k.Locale())
}

func toTime(value any, loc *time.Location) (time.Time, bool) {
	var t time.Time
	switch v := value.(type) {
	case time.Time:
		t = v
	case *time.Time:
		if v == nil {
			return time.Time{}, false
		}
		t = *v
	case string:
		return parseTimeString(v, loc)
	default:
		return numericMillis(value)
	}
	if t.IsZero() {
		return time.Time{}, false
	}
	return t, true
}

// numericMillis reads any integer or float kind, named types included, as
// epoch milliseconds.
func numericMillis(value any) (time.Time, bool) {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fromMillis(float64(rv.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return fromMillis(float64(rv.Uint()))
	case reflect.Float32, reflect.Float64:
		return fromMillis(rv.Float())
	default:
		return time.Time{}, false
	}
}

func fromMillis(ms float64) (time.Time, bool) {
	if math.IsNaN(ms) || math.IsInf(ms, 0) || math.Abs(ms) > maxEpochMillis {
		return time.Time{}, false
	}
	return time.UnixMilli(int64(ms)), true
}

// parseTimeString accepts date-only strings as UTC and date-time strings
// without a zone as loc, the way browsers interpret them.
func parseTimeString(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
