package weather

import "time"

// TimestampLayout is the long en-US form, e.g.
// "Sunday, October 18, 2026 at 02:30 PM".
const TimestampLayout = "Monday, January 2, 2006 at 03:04 PM"

// DisplayPayload is what the rendering side gets after a successful lookup.
type DisplayPayload struct {
	Name        string    `json:"name"`
	Icon        string    `json:"icon"`
	Temperature Degrees   `json:"temperature"`
	FeelsLike   Degrees   `json:"feelsLike"`
	Description string    `json:"description"`
	WindSpeed   Magnitude `json:"windSpeed"`
	Humidity    Magnitude `json:"humidity"`
	Visibility  Magnitude `json:"visibility"`
	Timestamp   string    `json:"timestamp"`
}

// NewDisplayPayload copies rec and stamps it with now in loc.
// A nil loc formats in the local zone.
func NewDisplayPayload(rec Record, now time.Time, loc *time.Location) DisplayPayload {
	return DisplayPayload{
		Name:        rec.Name,
		Icon:        rec.Icon,
		Temperature: rec.Temperature,
		FeelsLike:   rec.FeelsLike,
		Description: rec.Description,
		WindSpeed:   rec.WindSpeed,
		Humidity:    rec.Humidity,
		Visibility:  rec.Visibility,
		Timestamp:   FormatTimestamp(now, loc),
	}
}

// FormatTimestamp formats now with TimestampLayout.
func FormatTimestamp(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return now.In(loc).Format(TimestampLayout)
}

// FeelsLikeLabel renders the feels-like temperature with its unit.
func (p DisplayPayload) FeelsLikeLabel() string {
	if !p.FeelsLike.Valid {
		return MissingValue
	}
	return p.FeelsLike.String() + "°C"
}
