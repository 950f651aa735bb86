package clock

import (
	"encoding/json"
	"time"
)

// Timestamp serialises as RFC3339 with the fixed UTC-3 offset,
// e.g. "2025-11-14T18:30:00-03:00".
type Timestamp struct {
	time.Time
}

// At wraps t as a Timestamp.
func At(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// String formats the instant in Zone.
func (t Timestamp) String() string {
	return t.In(Zone).Format(time.RFC3339)
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.String())
}

// UnmarshalJSON accepts any ISO-8601 value understood by ParseISO.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		t.Time = time.Time{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseISO(raw)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// ISOTimestamp renders t in UTC with millisecond precision, the format used
// for error envelope timestamps.
func ISOTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

// Display renders t in Zone as DD/MM/YYYY HH:mm:ss for log lines.
func Display(t time.Time) string {
	return t.In(Zone).Format("02/01/2006 15:04:05")
}

// Offset renders the zone offset as +HH:MM / -HH:MM.
func Offset(t time.Time) string {
	return t.In(Zone).Format("-07:00")
}
