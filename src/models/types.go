package models

import (
	"fmt"
	"strings"
	"time"
)

// IntentKind is the closed set of weather questions the bot can answer.
type IntentKind int

const (
	IntentTemperature IntentKind = iota
	IntentWeatherCondition
	IntentDayNight
	IntentMoonSeasons
	IntentGeolocation
)

// AllIntents lists every intent in classifier class order. Argmax ties resolve
// to the earliest entry.
var AllIntents = []IntentKind{
	IntentTemperature,
	IntentWeatherCondition,
	IntentDayNight,
	IntentMoonSeasons,
	IntentGeolocation,
}

var intentNames = map[IntentKind]string{
	IntentTemperature:      "temperature",
	IntentWeatherCondition: "weather_condition",
	IntentDayNight:         "day_night",
	IntentMoonSeasons:      "moon_seasons",
	IntentGeolocation:      "geolocation",
}

func (k IntentKind) String() string {
	if name, ok := intentNames[k]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether k belongs to the closed intent set.
func (k IntentKind) Valid() bool {
	_, ok := intentNames[k]
	return ok
}

// ParseIntentKind accepts both the short name ("temperature") and the trained
// model label ("get_temperature_response").
func ParseIntentKind(label string) (IntentKind, bool) {
	name := strings.ToLower(strings.TrimSpace(label))
	name = strings.TrimPrefix(name, "get_")
	name = strings.TrimSuffix(name, "_response")
	for kind, known := range intentNames {
		if known == name {
			return kind, true
		}
	}
	return 0, false
}

func (k IntentKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *IntentKind) UnmarshalText(text []byte) error {
	kind, ok := ParseIntentKind(string(text))
	if !ok {
		return fmt.Errorf("unknown intent %q", text)
	}
	*k = kind
	return nil
}

// Sentence is one trimmed segment of the corrected input.
type Sentence struct {
	Text string `json:"text"`
}

// Lower returns the lowercased sentence used for entity tagging.
func (s Sentence) Lower() string {
	return strings.ToLower(s.Text)
}

type ClassificationResult struct {
	Intent     IntentKind `json:"intent"`
	Confidence float64    `json:"confidence"`
}

// CityMatch is a lowercased city name present in the gazetteer.
type CityMatch string

// QueryOutcome identifies one synthesized answer within a single query.
type QueryOutcome struct {
	City   CityMatch  `json:"city"`
	Intent IntentKind `json:"intent"`
}

type RoutingDecision struct {
	Intent     IntentKind
	Confidence float64
	Accepted   bool
	Reason     string
}

// Entity is a tagged span returned by the language pipeline.
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

const LabelGPE = "GPE"

// Correction is a grammar or spelling suggestion over a rune span of the text.
type Correction struct {
	Offset       int      `json:"offset"`
	Length       int      `json:"length"`
	Context      string   `json:"context"`
	Replacements []string `json:"replacements"`
	Message      string   `json:"message,omitempty"`
	RuleID       string   `json:"rule_id,omitempty"`
}

// QueryResult carries the joined answer plus what produced it.
type QueryResult struct {
	Response  string         `json:"response"`
	Sentences []string       `json:"sentences"`
	Outcomes  []QueryOutcome `json:"outcomes"`
	Failed    bool           `json:"failed"`
}

type QueryRequest struct {
	Text string `json:"text" binding:"required"`
}

type QueryResponse struct {
	RequestID string         `json:"request_id"`
	Response  string         `json:"response"`
	Sentences []string       `json:"sentences"`
	Outcomes  []QueryOutcome `json:"outcomes"`
	Latency   time.Duration  `json:"latency"`
	Timestamp time.Time      `json:"timestamp"`
}

type CacheStats struct {
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
	Entries int   `json:"entries"`
}
