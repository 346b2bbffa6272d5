// Package location supplies best-effort human-readable descriptions for
// coordinate pairs. Resolution itself is an external capability behind the
// Resolver interface; the only logic owned here besides the offline
// gazetteer is the coordinate fallback formatting.
package location

import (
	"context"
	"errors"
	"fmt"
)

// Coordinates is a latitude/longitude pair in decimal degrees
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Authorization is the user's answer to a location permission request
type Authorization string

const (
	AuthorizationNotDetermined Authorization = "not_determined"
	AuthorizationGranted       Authorization = "granted"
	AuthorizationDenied        Authorization = "denied"
)

// Authorizer gates access to location services
type Authorizer interface {
	Status() Authorization
	Request() Authorization
}

// Resolver turns coordinates into a descriptive string
type Resolver interface {
	Resolve(ctx context.Context, c Coordinates) (string, error)
}

// ErrNoMatch is returned when a resolver has no description for the
// given coordinates
var ErrNoMatch = errors.New("no place matches the given coordinates")

// ErrDenied is returned when location access has not been granted
var ErrDenied = errors.New("location access denied")

// FormatCoordinates renders a coordinate pair at fixed 4-decimal precision.
// It is the fallback location text when resolution fails.
func FormatCoordinates(c Coordinates) string {
	return fmt.Sprintf("Lat: %.4f, Lon: %.4f", c.Latitude, c.Longitude)
}

// Describe resolves c through r, falling back to the formatted coordinate
// pair on any resolver failure or empty result. It never fails: a location
// fetch degrades rather than blocking the save path.
func Describe(ctx context.Context, r Resolver, c Coordinates) string {
	text, err := r.Resolve(ctx, c)
	if err != nil || text == "" {
		return FormatCoordinates(c)
	}
	return text
}

// StaticAuthorizer answers permission requests from configuration. It
// stands in for a platform permission prompt: not-determined until asked,
// then granted or denied for the rest of the process lifetime.
type StaticAuthorizer struct {
	enabled bool
	status  Authorization
}

// NewStaticAuthorizer returns an authorizer that will grant access iff
// enabled is true
func NewStaticAuthorizer(enabled bool) *StaticAuthorizer {
	return &StaticAuthorizer{enabled: enabled, status: AuthorizationNotDetermined}
}

// Status returns the current authorization without prompting
func (a *StaticAuthorizer) Status() Authorization {
	return a.status
}

// Request resolves a not-determined status into granted or denied
func (a *StaticAuthorizer) Request() Authorization {
	if a.status == AuthorizationNotDetermined {
		if a.enabled {
			a.status = AuthorizationGranted
		} else {
			a.status = AuthorizationDenied
		}
	}
	return a.status
}

var _ Authorizer = (*StaticAuthorizer)(nil)
