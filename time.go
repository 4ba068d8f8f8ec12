package limesurveyrc2api

import (
	"encoding/json"
	"time"
)

// timeLayout is the date-time format used by the LimeSurvey API.
const timeLayout = "2006-01-02 15:04:05"

// Time supports marshalling and unmarshalling date-time values as
// exchanged with the LimeSurvey API. The API encodes unset dates as
// null, an empty string, or "N".
type Time struct {
	time.Time
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
func (m *Time) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" || s == "N" {
		return nil
	}

	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return err
	}
	m.Time = t

	return nil
}

// MarshalJSON implements the [json.Marshaler] interface.
func (m Time) MarshalJSON() ([]byte, error) {
	if m.IsZero() {
		return []byte("null"), nil
	}

	return json.Marshal(m.Format(timeLayout))
}
