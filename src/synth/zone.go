package synth

import (
	"fmt"
	"time"
	_ "time/tzdata" // zone names must resolve on hosts without a zoneinfo directory

	"github.com/ringsaturn/tzf"
)

// ZoneFinder resolves the IANA time-zone name for a coordinate.
type ZoneFinder interface {
	GetTimezoneName(lng, lat float64) string
}

// NewZoneFinder loads the embedded polygon data set.
func NewZoneFinder() (ZoneFinder, error) {
	finder, err := tzf.NewDefaultFinder()
	if err != nil {
		return nil, fmt.Errorf("failed to load time-zone polygons: %w", err)
	}
	return finder, nil
}

// place is the zone a record is rendered in. When the zone database does not
// know the name, the provider's fixed offset is used instead.
type place struct {
	name     string
	location *time.Location
	offset   int
	known    bool
}

func resolvePlace(zones ZoneFinder, lon, lat float64, hasCoord bool, offset int, hasOffset bool) place {
	p := place{location: time.UTC, offset: offset, known: hasOffset}
	if hasOffset {
		p.location = time.FixedZone(formatOffset(offset), offset)
	}
	if zones == nil || !hasCoord {
		return p
	}

	name := zones.GetTimezoneName(lon, lat)
	if name == "" {
		return p
	}
	p.name = name
	if loc, err := time.LoadLocation(name); err == nil {
		p.location = loc
	}
	return p
}
