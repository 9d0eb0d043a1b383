package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// epochMillisThreshold separates epoch seconds from epoch milliseconds: any
// numeric timestamp above 10^12 is treated as milliseconds.
const epochMillisThreshold = int64(1_000_000_000_000)

// FlexTime decodes the four timestamp representations the backend is known to
// emit: ISO-8601 with fractional seconds, ISO-8601 without fractional
// seconds, epoch seconds, and epoch milliseconds.
type FlexTime struct {
	time.Time
}

func NewFlexTime(t time.Time) *FlexTime {
	value := FlexTime{Time: t.UTC()}
	return &value
}

func (t *FlexTime) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}

	if trimmed[0] == '"' {
		var raw string
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return fmt.Errorf("core: invalid timestamp string: %w", err)
		}
		parsed, err := parseTimestampString(raw)
		if err != nil {
			return err
		}
		t.Time = parsed
		return nil
	}

	var numeric json.Number
	if err := json.Unmarshal(trimmed, &numeric); err != nil {
		return fmt.Errorf("core: invalid timestamp value %q: %w", string(trimmed), err)
	}
	parsed, err := parseTimestampNumber(numeric)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

func (t FlexTime) MarshalJSON() ([]byte, error) {
	if t.Time.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.UTC().Format(time.RFC3339Nano))
}

func parseTimestampString(raw string) (time.Time, error) {
	for _, layout := range []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05.999999999",
		"2006-01-02T15:04:05",
	} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.UTC(), nil
		}
	}
	// Some responses serialize epoch values as strings.
	if numeric, err := strconv.ParseFloat(raw, 64); err == nil {
		return epochToTime(numeric), nil
	}
	return time.Time{}, fmt.Errorf("core: unsupported timestamp format %q", raw)
}

func parseTimestampNumber(value json.Number) (time.Time, error) {
	numeric, err := value.Float64()
	if err != nil {
		return time.Time{}, fmt.Errorf("core: unsupported timestamp number %q: %w", value.String(), err)
	}
	return epochToTime(numeric), nil
}

func epochToTime(value float64) time.Time {
	if int64(value) > epochMillisThreshold {
		millis := int64(value)
		return time.UnixMilli(millis).UTC()
	}
	seconds := int64(value)
	nanos := int64((value - float64(seconds)) * float64(time.Second))
	return time.Unix(seconds, nanos).UTC()
}
