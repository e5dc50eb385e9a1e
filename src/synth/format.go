package synth

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

const (
	missingValue   = "no disponible"
	unknownCountry = "Desconocido"
	unknownIcon    = "Icono del clima no encontrado."
)

var weatherIcons = map[string][2]string{
	"01d": {"☀️", "🌞"},
	"01n": {"🌕", "✨"},
	"02d": {"⛅", "🌤️"},
	"02n": {"🌑", "☁️"},
	"03d": {"☁️", "🌥️"},
	"03n": {"☁️", "🌙"},
	"04d": {"☁️", "🌧️"},
	"04n": {"☁️", "☁️"},
	"09d": {"🌧️", "💧"},
	"09n": {"🌧️", "🌒"},
	"10d": {"🌦️", "☔"},
	"10n": {"🌧️", "🌜"},
	"11d": {"⛈️", "🌩️"},
	"11n": {"⛈️", "🌌"},
	"13d": {"❄️", "🌨️"},
	"13n": {"❄️", "🌛"},
	"50d": {"🌫️", "🌁"},
	"50n": {"🌫️", "🌒"},
}

// WeatherIcon renders the emoji pair for a provider icon code.
func WeatherIcon(code string) string {
	pair, ok := weatherIcons[code]
	if !ok {
		return unknownIcon
	}
	return pair[0] + " " + pair[1]
}

// CompassPoint is one of the sixteen wind directions.
type CompassPoint struct {
	Name  string
	Arrow string
}

var compass = [16]CompassPoint{
	{"N", "⬆️"}, {"NNE", "⬆️↗️"}, {"NE", "↗️"}, {"ENE", "➡️↗️"},
	{"E", "➡️"}, {"ESE", "➡️↘️"}, {"SE", "↘️"}, {"SSE", "⬇️↘️"},
	{"S", "⬇️"}, {"SSW", "⬇️↙️"}, {"SW", "↙️"}, {"WSW", "⬅️↙️"},
	{"W", "⬅️"}, {"WNW", "⬅️↖️"}, {"NW", "↖️"}, {"NNW", "⬆️↖️"},
}

// WindDirection maps degrees onto the 16-point compass.
func WindDirection(deg float64) CompassPoint {
	idx := int(math.Floor((deg+11.25)/22.5)) % 16
	if idx < 0 {
		idx += 16
	}
	return compass[idx]
}

var countryNamer = display.Regions(language.Spanish)

// CountryName returns the Spanish name of an ISO 3166 alpha-2 code.
func CountryName(code string, ok bool) string {
	if !ok {
		return unknownCountry
	}
	region, err := language.ParseRegion(code)
	if err != nil {
		return unknownCountry
	}
	name := countryNamer.Name(region)
	if name == "" {
		return unknownCountry
	}
	return name
}

// formatNumber drops trailing zeros, so 33 renders as "33" and 31.2 as "31.2".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func orMissing[T any](v T, ok bool, render func(T) string) string {
	if !ok {
		return missingValue
	}
	return render(v)
}

func floatWith(suffix string) func(float64) string {
	return func(v float64) string { return formatNumber(v) + suffix }
}

func intWith(suffix string) func(int) string {
	return func(v int) string { return strconv.Itoa(v) + suffix }
}

// formatClock renders a duration as H:MM:SS.
func formatClock(d time.Duration) string {
	total := int64(d.Round(time.Second) / time.Second)
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%d:%02d:%02d", total/3600, (total/60)%60, total%60)
}

// formatOffset renders a UTC offset in seconds as UTC+HH:MM.
func formatOffset(seconds int) string {
	sign := "+"
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	return fmt.Sprintf("UTC%s%02d:%02d", sign, seconds/3600, (seconds/60)%60)
}

type unitLabels struct {
	temperature string
	speed       string
}

func labelsFor(units string) unitLabels {
	switch strings.ToLower(units) {
	case "imperial":
		return unitLabels{temperature: "°F", speed: "millas/hora"}
	case "standard":
		return unitLabels{temperature: "K", speed: "metros/seg"}
	default:
		return unitLabels{temperature: "°C", speed: "metros/seg"}
	}
}
