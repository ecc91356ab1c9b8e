// Package timezone holds the application location set from APP_TIMEZONE. Until Init
// runs every helper works in UTC.
package timezone

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
)

var current atomic.Pointer[time.Location]

// Init loads the IANA zone name, e.g. "Africa/Nairobi". An empty name selects UTC; an
// unknown one is reported and also leaves UTC in place.
func Init(name string) error {
	if name == "" {
		current.Store(time.UTC)
		log.Warn().Msg("no timezone configured, using UTC")

		return nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		current.Store(time.UTC)

		return fmt.Errorf("failed to load timezone %q: %w", name, err)
	}

	current.Store(loc)
	log.Info().Str("timezone", loc.String()).Msg("application timezone initialized")

	return nil
}

// Location returns the application location.
func Location() *time.Location {
	if loc := current.Load(); loc != nil {
		return loc
	}

	return time.UTC
}

// Now returns the current time in the application timezone.
func Now() time.Time {
	return time.Now().In(Location())
}

// ToAppTime converts t to the application timezone.
func ToAppTime(t time.Time) time.Time {
	return t.In(Location())
}

// Parse parses value as a wall-clock time in the application timezone.
func Parse(layout, value string) (time.Time, error) {
	t, err := time.ParseInLocation(layout, value, Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse time: %w", err)
	}

	return t, nil
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}
