package jdoc

import (
	"net/url"
	"time"

	"github.com/google/uuid"
)

// ticksPerDuration is the length of one tick, the unit durations are written
// in.
const ticksPerDuration = 100 * time.Nanosecond

var (
	// TimeConverter turns time.Time into a date value.
	TimeConverter = NewConverter(func(t time.Time) (Member, error) {
		return Date(t), nil
	})

	// DurationConverter turns time.Duration into an integer count of
	// 100-nanosecond ticks.
	DurationConverter = NewConverter(func(d time.Duration) (Member, error) {
		return Int(int64(d / ticksPerDuration)), nil
	})

	// URLConverter turns url.URL and *url.URL into strings.
	URLConverter = Group(
		NewConverter(func(u url.URL) (Member, error) {
			return String(u.String()), nil
		}),
		NewConverter(func(u *url.URL) (Member, error) {
			if u == nil {
				return Null(), nil
			}
			return String(u.String()), nil
		}),
	)

	// UUIDConverter turns uuid.UUID into its canonical string form.
	UUIDConverter = NewConverter(func(id uuid.UUID) (Member, error) {
		return String(id.String()), nil
	})
)

// Stdlib bundles the converters for common standard library and identifier
// types.
func Stdlib() Registration {
	return Group(TimeConverter, DurationConverter, URLConverter, UUIDConverter)
}
