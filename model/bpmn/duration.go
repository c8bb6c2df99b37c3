package bpmn

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// PlannedDurationType is the extension type tag carrying a planned duration.
const PlannedDurationType = "proceed:timePlannedDuration"

// days, hours, minutes and seconds only
var durationExpr = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// ParseDuration parses the ISO-8601 duration subset used for planned
// durations, e.g. "P1D", "PT2H" or "P1DT2H30M".
func ParseDuration(value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	matches := durationExpr.FindStringSubmatch(value)
	if matches == nil {
		return 0, fmt.Errorf("invalid ISO 8601 duration %q", value)
	}
	units := []time.Duration{24 * time.Hour, time.Hour, time.Minute, time.Second}
	var total time.Duration
	for i, unit := range units {
		group := matches[i+1]
		if group == "" {
			continue
		}
		count, err := strconv.ParseInt(group, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid ISO 8601 duration %q: %w", value, err)
		}
		total += time.Duration(count) * unit
	}
	return total, nil
}

// PlannedDuration returns the raw planned-duration value of an element, or
// "" when none is present. The value is looked up as a direct
// timePlannedDuration property first, then among $children by type tag or,
// for legacy documents, by name.
func PlannedDuration(element Element) string {
	extensions := element.Base().Extensions
	if extensions == nil {
		return ""
	}
	for _, extension := range extensions.Values {
		if extension == nil {
			continue
		}
		if holder := extension.TimePlannedDuration; holder != nil && holder.Value != "" {
			return holder.Value
		}
		for _, child := range extension.Children {
			if child == nil {
				continue
			}
			if child.Type != PlannedDurationType && child.Name != PlannedDurationType {
				continue
			}
			if value := child.text(); value != "" {
				return value
			}
		}
	}
	return ""
}

func (c *ExtensionChild) text() string {
	switch {
	case c.Value != "":
		return c.Value
	case c.Body != "":
		return c.Body
	}
	return c.RawBody
}

// ExtractDuration returns the parsed planned duration of an element.
// present is false when the element carries no duration value.
func ExtractDuration(element Element) (duration time.Duration, present bool, err error) {
	raw := PlannedDuration(element)
	if raw == "" {
		return 0, false, nil
	}
	duration, err = ParseDuration(raw)
	return duration, true, err
}
