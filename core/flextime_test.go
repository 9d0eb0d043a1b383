package core

import (
	"encoding/json"
	"testing"
	"time"
)

func TestFlexTimeDecodesKnownRepresentations(t *testing.T) {
	want := time.Date(2026, 2, 10, 15, 4, 5, 0, time.UTC)

	cases := []struct {
		name string
		raw  string
		want time.Time
	}{
		{"iso with fraction", `"2026-02-10T15:04:05.250Z"`, want.Add(250 * time.Millisecond)},
		{"iso without fraction", `"2026-02-10T15:04:05Z"`, want},
		{"iso without zone", `"2026-02-10T15:04:05"`, want},
		{"epoch seconds", `1770735845`, want},
		{"epoch milliseconds", `1770735845250`, want.Add(250 * time.Millisecond)},
		{"epoch seconds as string", `"1770735845"`, want},
	}

	for _, tc := range cases {
		var parsed FlexTime
		if err := json.Unmarshal([]byte(tc.raw), &parsed); err != nil {
			t.Fatalf("%s: unmarshal: %v", tc.name, err)
		}
		if !parsed.Time.Equal(tc.want) {
			t.Fatalf("%s: got %v want %v", tc.name, parsed.Time, tc.want)
		}
	}
}

func TestFlexTimeNullAndMissing(t *testing.T) {
	var parsed FlexTime
	if err := json.Unmarshal([]byte("null"), &parsed); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if !parsed.Time.IsZero() {
		t.Fatalf("expected zero time for null, got %v", parsed.Time)
	}

	var holder struct {
		At *FlexTime `json:"at,omitempty"`
	}
	if err := json.Unmarshal([]byte(`{}`), &holder); err != nil {
		t.Fatalf("unmarshal empty object: %v", err)
	}
	if holder.At != nil {
		t.Fatalf("expected nil pointer for absent field")
	}
}

func TestFlexTimeRejectsGarbage(t *testing.T) {
	var parsed FlexTime
	if err := json.Unmarshal([]byte(`"next tuesday"`), &parsed); err == nil {
		t.Fatalf("expected error for unparseable timestamp")
	}
	if err := json.Unmarshal([]byte(`true`), &parsed); err == nil {
		t.Fatalf("expected error for boolean timestamp")
	}
}

func TestFlexTimeMarshalRoundTrip(t *testing.T) {
	original := NewFlexTime(time.Date(2026, 2, 10, 15, 4, 5, 250_000_000, time.UTC))
	encoded, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded FlexTime
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !decoded.Time.Equal(original.Time) {
		t.Fatalf("round trip drift: got %v want %v", decoded.Time, original.Time)
	}

	zero := FlexTime{}
	encoded, err = json.Marshal(zero)
	if err != nil {
		t.Fatalf("marshal zero: %v", err)
	}
	if string(encoded) != "null" {
		t.Fatalf("expected zero time to marshal as null, got %s", encoded)
	}
}
