package models

import "time"

// WeatherRecord is the current-weather payload returned by the provider.
// Optional readings are pointers; use the accessors, which report whether the
// provider sent the field.
type WeatherRecord struct {
	Coord      *Coordinates       `json:"coord,omitempty"`
	Conditions []WeatherCondition `json:"weather,omitempty"`
	Base       string             `json:"base,omitempty"`
	Main       *MainReadings      `json:"main,omitempty"`
	Visibility *int               `json:"visibility,omitempty"`
	Wind       *WindReadings      `json:"wind,omitempty"`
	Clouds     *CloudReadings     `json:"clouds,omitempty"`
	Dt         *int64             `json:"dt,omitempty"`
	Sys        *SysInfo           `json:"sys,omitempty"`
	Timezone   *int               `json:"timezone,omitempty"`
	ID         int64              `json:"id"`
	Name       string             `json:"name"`
}

type Coordinates struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

type WeatherCondition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type MainReadings struct {
	Temp      *float64 `json:"temp,omitempty"`
	FeelsLike *float64 `json:"feels_like,omitempty"`
	TempMin   *float64 `json:"temp_min,omitempty"`
	TempMax   *float64 `json:"temp_max,omitempty"`
	Pressure  *int     `json:"pressure,omitempty"`
	Humidity  *int     `json:"humidity,omitempty"`
}

type WindReadings struct {
	Speed *float64 `json:"speed,omitempty"`
	Deg   *float64 `json:"deg,omitempty"`
}

type CloudReadings struct {
	All *int `json:"all,omitempty"`
}

type SysInfo struct {
	Country string `json:"country,omitempty"`
	Sunrise *int64 `json:"sunrise,omitempty"`
	Sunset  *int64 `json:"sunset,omitempty"`
}

func deref[T any](p *T) (T, bool) {
	if p == nil {
		var zero T
		return zero, false
	}
	return *p, true
}

func (r *WeatherRecord) Coordinates() (Coordinates, bool) { return deref(r.Coord) }

// Condition returns the primary weather condition.
func (r *WeatherRecord) Condition() (WeatherCondition, bool) {
	if len(r.Conditions) == 0 {
		return WeatherCondition{}, false
	}
	return r.Conditions[0], true
}

func (r *WeatherRecord) Temperature() (float64, bool) {
	if r.Main == nil {
		return 0, false
	}
	return deref(r.Main.Temp)
}

func (r *WeatherRecord) FeelsLike() (float64, bool) {
	if r.Main == nil {
		return 0, false
	}
	return deref(r.Main.FeelsLike)
}

func (r *WeatherRecord) TempMin() (float64, bool) {
	if r.Main == nil {
		return 0, false
	}
	return deref(r.Main.TempMin)
}

func (r *WeatherRecord) TempMax() (float64, bool) {
	if r.Main == nil {
		return 0, false
	}
	return deref(r.Main.TempMax)
}

func (r *WeatherRecord) Pressure() (int, bool) {
	if r.Main == nil {
		return 0, false
	}
	return deref(r.Main.Pressure)
}

func (r *WeatherRecord) Humidity() (int, bool) {
	if r.Main == nil {
		return 0, false
	}
	return deref(r.Main.Humidity)
}

func (r *WeatherRecord) VisibilityMeters() (int, bool) { return deref(r.Visibility) }

func (r *WeatherRecord) WindSpeed() (float64, bool) {
	if r.Wind == nil {
		return 0, false
	}
	return deref(r.Wind.Speed)
}

func (r *WeatherRecord) WindDegrees() (float64, bool) {
	if r.Wind == nil {
		return 0, false
	}
	return deref(r.Wind.Deg)
}

func (r *WeatherRecord) Cloudiness() (int, bool) {
	if r.Clouds == nil {
		return 0, false
	}
	return deref(r.Clouds.All)
}

func (r *WeatherRecord) Country() (string, bool) {
	if r.Sys == nil || r.Sys.Country == "" {
		return "", false
	}
	return r.Sys.Country, true
}

func (r *WeatherRecord) Sunrise() (time.Time, bool) {
	if r.Sys == nil || r.Sys.Sunrise == nil {
		return time.Time{}, false
	}
	return time.Unix(*r.Sys.Sunrise, 0).UTC(), true
}

func (r *WeatherRecord) Sunset() (time.Time, bool) {
	if r.Sys == nil || r.Sys.Sunset == nil {
		return time.Time{}, false
	}
	return time.Unix(*r.Sys.Sunset, 0).UTC(), true
}

// UTCOffset is the shift in seconds from UTC reported for the city.
func (r *WeatherRecord) UTCOffset() (int, bool) { return deref(r.Timezone) }

// ObservedAt is the time the provider computed the readings.
func (r *WeatherRecord) ObservedAt() (time.Time, bool) {
	if r.Dt == nil {
		return time.Time{}, false
	}
	return time.Unix(*r.Dt, 0).UTC(), true
}
