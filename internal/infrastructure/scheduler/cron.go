package scheduler

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// CronSpec is a parsed five-field cron expression
// (minute, hour, day of month, month, day of week).
// Supported field forms: "*", "*/n", "n" and "a,b,c".
type CronSpec struct {
	minute fieldMatcher
	hour   fieldMatcher
	dom    fieldMatcher
	month  fieldMatcher
	dow    fieldMatcher
}

type fieldMatcher struct {
	any    bool
	step   int
	values map[int]bool
}

func (m fieldMatcher) matches(v int) bool {
	if m.any {
		return true
	}
	if m.step > 0 {
		return v%m.step == 0
	}
	return m.values[v]
}

// ParseCronSpec parses a five-field cron expression
func ParseCronSpec(spec string) (*CronSpec, error) {
	fields := strings.Fields(spec)
	if len(fields) != 5 {
		return nil, fmt.Errorf("%w: expected 5 fields, got %d", ErrInvalidCronSpec, len(fields))
	}

	bounds := []struct{ min, max int }{
		{0, 59}, // minute
		{0, 23}, // hour
		{1, 31}, // day of month
		{1, 12}, // month
		{0, 6},  // day of week
	}

	matchers := make([]fieldMatcher, 5)
	for i, field := range fields {
		m, err := parseField(field, bounds[i].min, bounds[i].max)
		if err != nil {
			return nil, err
		}
		matchers[i] = m
	}

	return &CronSpec{
		minute: matchers[0],
		hour:   matchers[1],
		dom:    matchers[2],
		month:  matchers[3],
		dow:    matchers[4],
	}, nil
}

func parseField(field string, min, max int) (fieldMatcher, error) {
	if field == "*" {
		return fieldMatcher{any: true}, nil
	}

	if after, ok := strings.CutPrefix(field, "*/"); ok {
		step, err := strconv.Atoi(after)
		if err != nil || step <= 0 || step > max {
			return fieldMatcher{}, fmt.Errorf("%w: bad step %q", ErrInvalidCronSpec, field)
		}
		return fieldMatcher{step: step}, nil
	}

	values := make(map[int]bool)
	for _, part := range strings.Split(field, ",") {
		v, err := strconv.Atoi(part)
		if err != nil || v < min || v > max {
			return fieldMatcher{}, fmt.Errorf("%w: bad value %q", ErrInvalidCronSpec, part)
		}
		values[v] = true
	}
	return fieldMatcher{values: values}, nil
}

// Matches reports whether the schedule fires at the given minute
func (c *CronSpec) Matches(t time.Time) bool {
	return c.minute.matches(t.Minute()) &&
		c.hour.matches(t.Hour()) &&
		c.dom.matches(t.Day()) &&
		c.month.matches(int(t.Month())) &&
		c.dow.matches(int(t.Weekday()))
}
