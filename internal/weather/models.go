package weather

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// MissingValue is rendered in place of a field the dataset did not provide.
const MissingValue = "--"

// Record is the static weather entry of a single city.
// Records are never mutated once a dataset has been loaded.
type Record struct {
	Name        string    `json:"name"`
	Icon        string    `json:"icon"`
	Temperature Degrees   `json:"temperature"`
	FeelsLike   Degrees   `json:"feelsLike"`
	Description string    `json:"description"`
	WindSpeed   Magnitude `json:"windSpeed"`
	Humidity    Magnitude `json:"humidity"`
	Visibility  Magnitude `json:"visibility"`
}

// Degrees is a temperature value in degrees Celsius. A zero Degrees is unset.
type Degrees struct {
	Value float64
	Valid bool
}

// DegreesOf returns a set Degrees value.
func DegreesOf(v float64) Degrees {
	return Degrees{Value: v, Valid: true}
}

// String formats the value without trailing zeros, or MissingValue when unset.
func (d Degrees) String() string {
	if !d.Valid {
		return MissingValue
	}
	return strconv.FormatFloat(d.Value, 'f', -1, 64)
}

// UnmarshalJSON accepts a JSON number, a numeric string or null.
func (d *Degrees) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*d = Degrees{}
		return nil
	}

	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = s
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid degree value %s", data)
	}
	*d = DegreesOf(v)
	return nil
}

// MarshalJSON writes the number, or null when unset.
func (d Degrees) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(d.Value)
}

// Magnitude is a unit-bearing reading such as "12 km/h" or "65%".
// The text is passed through untouched.
type Magnitude struct {
	Text  string
	Valid bool
}

// MagnitudeOf returns a set Magnitude value.
func MagnitudeOf(text string) Magnitude {
	return Magnitude{Text: text, Valid: true}
}

func (m Magnitude) String() string {
	if !m.Valid {
		return MissingValue
	}
	return m.Text
}

// UnmarshalJSON accepts a JSON string, a number (kept as written) or null.
func (m *Magnitude) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*m = Magnitude{}
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*m = MagnitudeOf(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid magnitude value %s", data)
	}
	*m = MagnitudeOf(n.String())
	return nil
}

// MarshalJSON writes the text, or null when unset.
func (m Magnitude) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(m.Text)
}

// CityEntry is one line of the quick-selection list.
type CityEntry struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}
