package synth

import (
	"math"
	"time"
)

// MoonPhase is a named lunar phase with its emoji.
type MoonPhase struct {
	Name string
	Icon string
}

// PhaseForAge buckets the days elapsed since the last new moon.
func PhaseForAge(age float64) MoonPhase {
	switch {
	case age < 1:
		return MoonPhase{"Luna nueva", "🌑"}
	case age < 7:
		return MoonPhase{"Luna creciente", "🌒"}
	case age == 7:
		return MoonPhase{"Cuarto creciente", "🌓"}
	case age < 14:
		return MoonPhase{"Luna gibosa creciente", "🌔"}
	case age == 14:
		return MoonPhase{"Luna llena", "🌕"}
	case age < 21:
		return MoonPhase{"Luna gibosa menguante", "🌖"}
	case age == 21:
		return MoonPhase{"Cuarto menguante", "🌗"}
	default:
		return MoonPhase{"Luna menguante", "🌘"}
	}
}

const (
	unixEpochJD   = 2440587.5
	synodicMonth  = 29.530588861
	newMoonEpoch  = 2451550.09766 // first new moon of 2000, JDE
	secondsPerDay = 86400.0
)

func julianDay(t time.Time) float64 {
	return float64(t.UnixNano())/1e9/secondsPerDay + unixEpochJD
}

// MoonAge returns the days elapsed since the new moon preceding t.
func MoonAge(t time.Time) float64 {
	jd := julianDay(t)
	k := math.Floor((jd - newMoonEpoch) / synodicMonth)

	nm := newMoonJDE(k)
	for nm > jd {
		k--
		nm = newMoonJDE(k)
	}
	for {
		next := newMoonJDE(k + 1)
		if next > jd {
			break
		}
		k++
		nm = next
	}
	return jd - nm
}

func sinDeg(d float64) float64 { return math.Sin(d * math.Pi / 180) }

// newMoonJDE is the time of new moon number k counted from January 2000,
// following Meeus, Astronomical Algorithms, chapter 49.
func newMoonJDE(k float64) float64 {
	t := k / 1236.85
	t2, t3, t4 := t*t, t*t*t, t*t*t*t

	jde := newMoonEpoch + synodicMonth*k + 0.00015437*t2 - 0.000000150*t3 + 0.00000000073*t4

	e := 1 - 0.002516*t - 0.0000074*t2
	m := 2.5534 + 29.10535670*k - 0.0000014*t2 - 0.00000011*t3
	mp := 201.5643 + 385.81693528*k + 0.0107582*t2 + 0.00001238*t3 - 0.000000058*t4
	f := 160.7108 + 390.67050284*k - 0.0016118*t2 - 0.00000227*t3 + 0.000000011*t4
	omega := 124.7746 - 1.56375588*k + 0.0020672*t2 + 0.00000215*t3

	jde += -0.40720*sinDeg(mp) +
		0.17241*e*sinDeg(m) +
		0.01608*sinDeg(2*mp) +
		0.01039*sinDeg(2*f) +
		0.00739*e*sinDeg(mp-m) -
		0.00514*e*sinDeg(mp+m) +
		0.00208*e*e*sinDeg(2*m) -
		0.00111*sinDeg(mp-2*f) -
		0.00057*sinDeg(mp+2*f) +
		0.00056*e*sinDeg(2*mp+m) -
		0.00042*sinDeg(3*mp) +
		0.00042*e*sinDeg(m+2*f) +
		0.00038*e*sinDeg(m-2*f) -
		0.00024*e*sinDeg(2*mp-m) -
		0.00017*sinDeg(omega) -
		0.00007*sinDeg(mp+2*m) +
		0.00004*sinDeg(2*mp-2*f) +
		0.00004*sinDeg(3*m) +
		0.00003*sinDeg(mp+m-2*f) +
		0.00003*sinDeg(2*mp+2*f) -
		0.00003*sinDeg(mp+m+2*f) +
		0.00003*sinDeg(mp-m+2*f) -
		0.00002*sinDeg(mp-m-2*f) -
		0.00002*sinDeg(3*mp+m) +
		0.00002*sinDeg(4*mp)

	planetary := [...]struct{ coef, base, rate float64 }{
		{0.000325, 299.77, 0.107408},
		{0.000165, 251.88, 0.016321},
		{0.000164, 251.83, 26.651886},
		{0.000126, 349.42, 36.412478},
		{0.000110, 84.66, 18.206239},
		{0.000062, 141.74, 53.303771},
		{0.000060, 207.14, 2.453732},
		{0.000056, 154.84, 7.306860},
		{0.000047, 34.52, 27.261239},
		{0.000042, 207.19, 0.121824},
		{0.000040, 291.34, 1.844379},
		{0.000037, 161.72, 24.198154},
		{0.000035, 239.56, 25.513099},
		{0.000023, 331.55, 3.592518},
	}
	for i, p := range planetary {
		arg := p.base + p.rate*k
		if i == 0 {
			arg -= 0.009173 * t2
		}
		jde += p.coef * sinDeg(arg)
	}
	return jde
}

// Season is the meteorological season at a place and date.
type Season struct {
	Hemisphere string
	Name       string
	Icon       string
}

var (
	spring = Season{Name: "Primavera", Icon: "🌸"}
	summer = Season{Name: "Verano", Icon: "☀️"}
	autumn = Season{Name: "Otoño", Icon: "🍂"}
	winter = Season{Name: "Invierno", Icon: "❄️"}
)

// DetermineSeason uses fixed cutoffs (Mar 21, Jun 21, Sep 23, Dec 21),
// mirrored for the southern hemisphere. Latitude 0 counts as south.
func DetermineSeason(lat float64, month time.Month, day int) Season {
	var quarter int
	switch {
	case (month > time.March && month < time.June) || (month == time.March && day >= 21) || (month == time.June && day < 21):
		quarter = 0
	case (month > time.June && month < time.September) || (month == time.June && day >= 21) || (month == time.September && day < 23):
		quarter = 1
	case (month > time.September && month < time.December) || (month == time.September && day >= 23) || (month == time.December && day < 21):
		quarter = 2
	default:
		quarter = 3
	}

	if lat > 0 {
		s := [...]Season{spring, summer, autumn, winter}[quarter]
		s.Hemisphere = "Norte"
		return s
	}
	s := [...]Season{autumn, winter, spring, summer}[quarter]
	s.Hemisphere = "Sur"
	return s
}

// TimeZoneIcon picks the globe facing the longitude.
func TimeZoneIcon(lon float64) string {
	switch {
	case lon >= -90 && lon <= -30:
		return "🌎"
	case lon > -30 && lon < 60:
		return "🌍"
	default:
		return "🌏"
	}
}
