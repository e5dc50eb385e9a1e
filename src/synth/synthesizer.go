package synth

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/torresnicolas0/clima-chatbot/src/config"
	"github.com/torresnicolas0/clima-chatbot/src/models"
)

const (
	unavailableTemplate = "No hay datos del clima disponibles para %s."
	infoUnavailable     = "Información no disponible"
	hoursSuffix         = " Hs"
)

// Synthesizer renders one answer per (city, intent) outcome from a cached
// weather record.
type Synthesizer struct {
	weather  models.WeatherSource
	zones    ZoneFinder
	units    string
	language string
}

func NewSynthesizer(cfg *config.WeatherConfig, weather models.WeatherSource, zones ZoneFinder) *Synthesizer {
	return &Synthesizer{
		weather:  weather,
		zones:    zones,
		units:    cfg.Units,
		language: cfg.Language,
	}
}

// Synthesize never fails. Provider errors become an inline placeholder.
func (s *Synthesizer) Synthesize(ctx context.Context, city models.CityMatch, intent models.IntentKind) string {
	record, err := s.weather.GetOrFetch(ctx, string(city), s.units, s.language)
	if err != nil || record == nil {
		if err != nil {
			log.Printf("No weather for %q (%s): %v", city, intent, err)
		}
		return fmt.Sprintf(unavailableTemplate, city)
	}

	r := s.newReport(city, record)
	switch intent {
	case models.IntentTemperature:
		return r.temperature()
	case models.IntentWeatherCondition:
		return r.condition()
	case models.IntentDayNight:
		return r.dayNight()
	case models.IntentMoonSeasons:
		return r.moonSeasons()
	case models.IntentGeolocation:
		return r.geolocation()
	default:
		return infoUnavailable
	}
}

// report is a weather record bound to the zone and units it is rendered in.
type report struct {
	record *models.WeatherRecord
	place  place
	labels unitLabels
	title  string
}

func (s *Synthesizer) newReport(city models.CityMatch, record *models.WeatherRecord) *report {
	coord, hasCoord := record.Coordinates()
	offset, hasOffset := record.UTCOffset()

	name := record.Name
	if name == "" {
		name = string(city)
	}
	country, ok := record.Country()

	return &report{
		record: record,
		place:  resolvePlace(s.zones, coord.Lon, coord.Lat, hasCoord, offset, hasOffset),
		labels: labelsFor(s.units),
		title:  name + ", " + CountryName(country, ok),
	}
}

func (r *report) render(header string, fields ...[2]string) string {
	var b strings.Builder
	b.WriteString(header)
	for _, f := range fields {
		b.WriteString("\n - ")
		b.WriteString(f[0])
		b.WriteString(": ")
		b.WriteString(f[1])
	}
	return b.String()
}

func (r *report) temperature() string {
	deg := floatWith(r.labels.temperature)
	temp, hasTemp := r.record.Temperature()
	low, hasLow := r.record.TempMin()
	high, hasHigh := r.record.TempMax()
	feels, hasFeels := r.record.FeelsLike()

	reading := orMissing(temp, hasTemp, deg) +
		" (Min: " + orMissing(low, hasLow, deg) +
		", Max: " + orMissing(high, hasHigh, deg) + ")"

	amplitude := missingValue
	if hasLow && hasHigh {
		amplitude = fmt.Sprintf("%.2f%s", high-low, r.labels.temperature)
	}

	return r.render("Estado Actual en "+r.title+":",
		[2]string{"Temperatura", reading},
		[2]string{"Sensación Térmica", orMissing(feels, hasFeels, deg)},
		[2]string{"Amplitud Térmica", amplitude},
	)
}

func (r *report) icon() string {
	cond, ok := r.record.Condition()
	if !ok {
		return unknownIcon
	}
	return WeatherIcon(cond.Icon)
}

func (r *report) condition() string {
	description := missingValue
	if cond, ok := r.record.Condition(); ok && cond.Description != "" {
		description = cond.Description
	}
	pressure, hasPressure := r.record.Pressure()
	humidity, hasHumidity := r.record.Humidity()
	visibility, hasVisibility := r.record.VisibilityMeters()
	clouds, hasClouds := r.record.Cloudiness()

	return r.render(r.icon()+"\nClima Actual en "+r.title+":",
		[2]string{"Estado", description},
		[2]string{"Presión Atmosférica", orMissing(pressure, hasPressure, intWith(" hPa"))},
		[2]string{"Humedad", orMissing(humidity, hasHumidity, intWith("%"))},
		[2]string{"Visibilidad", orMissing(visibility, hasVisibility, intWith(" metros"))},
		[2]string{"Viento", r.wind()},
		[2]string{"Nubosidad", orMissing(clouds, hasClouds, intWith("%"))},
	)
}

func (r *report) wind() string {
	speed, hasSpeed := r.record.WindSpeed()
	deg, hasDeg := r.record.WindDegrees()
	if !hasSpeed {
		return missingValue
	}
	out := formatNumber(speed) + " " + r.labels.speed
	if hasDeg {
		dir := WindDirection(deg)
		out += fmt.Sprintf(" en dirección %s° %s %s", formatNumber(deg), dir.Name, dir.Arrow)
	}
	return out
}

func (r *report) clock(t time.Time, ok bool) string {
	if !ok {
		return missingValue
	}
	return t.In(r.place.location).Format("15:04:05") + hoursSuffix
}

func (r *report) dayNight() string {
	sunrise, hasSunrise := r.record.Sunrise()
	sunset, hasSunset := r.record.Sunset()

	daylight, darkness := missingValue, missingValue
	if hasSunrise && hasSunset {
		light := sunset.Sub(sunrise)
		if light < 0 {
			light = 0
		}
		if light > 24*time.Hour {
			light = 24 * time.Hour
		}
		daylight = formatClock(light) + hoursSuffix
		darkness = formatClock(24*time.Hour-light) + hoursSuffix
	}

	return r.render(r.icon()+"\nHorario Solar en "+r.title+":",
		[2]string{"Salida del Sol", r.clock(sunrise, hasSunrise)},
		[2]string{"Puesta del Sol", r.clock(sunset, hasSunset)},
		[2]string{"Horas de Luz", daylight},
		[2]string{"Horas de Oscuridad", darkness},
	)
}

func (r *report) moonSeasons() string {
	hemisphere, seasonName, seasonIcon := missingValue, missingValue, "❔"
	phaseName, phaseIcon := missingValue, "❔"

	// Phase and season depend on the observation date.
	if observed, ok := r.record.ObservedAt(); ok {
		local := observed.In(r.place.location)
		phase := PhaseForAge(MoonAge(local))
		phaseName, phaseIcon = phase.Name, phase.Icon

		if coord, ok := r.record.Coordinates(); ok {
			season := DetermineSeason(coord.Lat, local.Month(), local.Day())
			hemisphere = season.Hemisphere
			seasonName = season.Name
			seasonIcon = season.Icon
		}
	}

	return r.render(seasonIcon+" | "+phaseIcon+"\nDetalles Astronómicos en "+r.title+":",
		[2]string{"Hemisferio", hemisphere},
		[2]string{"Estación del Año", seasonName},
		[2]string{"Fase Lunar", phaseName},
	)
}

func (r *report) geolocation() string {
	coord, hasCoord := r.record.Coordinates()

	icon, coordinates := "❔", missingValue
	if hasCoord {
		icon = TimeZoneIcon(coord.Lon)
		coordinates = fmt.Sprintf("Longitud %s, Latitud %s", formatNumber(coord.Lon), formatNumber(coord.Lat))
	}

	zone := missingValue
	switch {
	case r.place.name != "" && r.place.known:
		zone = r.place.name + ", " + formatOffset(r.place.offset)
	case r.place.name != "":
		zone = r.place.name
		if observed, ok := r.record.ObservedAt(); ok {
			_, offset := observed.In(r.place.location).Zone()
			zone += ", " + formatOffset(offset)
		}
	case r.place.known:
		zone = formatOffset(r.place.offset)
	}

	return r.render(icon+"\nGeolocalización de "+r.title+":",
		[2]string{"Coordenadas", coordinates},
		[2]string{"Zona Horaria", zone},
	)
}
