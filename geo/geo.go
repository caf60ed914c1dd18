// Package geo models the device geolocation bridge. The real capability is
// an external collaborator (native plugin or browser API); here it is an
// interface so the rest of the app can be wired against any source.
package geo

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Position is a geolocation fix
type Position struct {
	Latitude  float64
	Longitude float64
	Accuracy  float64
	Timestamp time.Time
}

// Errors a locator can surface, matching the browser permission model
var (
	ErrPermissionDenied = errors.New("location access denied by user")
	ErrUnavailable      = errors.New("location information unavailable")
	ErrTimeout          = errors.New("location request timed out")
)

// Locator yields the device's current position or a permission/availability error
type Locator interface {
	Current() (Position, error)
}

// LocatorFunc adapts a plain function into a Locator
type LocatorFunc func() (Position, error)

func (f LocatorFunc) Current() (Position, error) { return f() }

// Unsupported is the locator used when no geolocation source exists on the
// host. Every call fails with ErrUnavailable.
func Unsupported() Locator {
	return LocatorFunc(func() (Position, error) {
		return Position{}, ErrUnavailable
	})
}

// DeviceInfo describes the platform the app runs on. Geolocation is gated
// to mobile/tablet devices; desktop users get a warning instead.
type DeviceInfo struct {
	Platform string
	IsNative bool
	IsMobile bool
	IsTablet bool
}

// DetectDevice classifies a platform string the way the UI shell does
func DetectDevice(platform string) DeviceInfo {
	info := DeviceInfo{Platform: platform}
	switch platform {
	case "ios", "android":
		info.IsNative = true
		info.IsMobile = true
	case "tablet":
		info.Platform = "web"
		info.IsTablet = true
	default:
		info.Platform = "web"
	}
	return info
}

// FormatCoordinate renders a coordinate as DD.DDDDDD° with its hemisphere
// letter. axis is "lat" or "lng".
func FormatCoordinate(value float64, axis string) string {
	var direction string
	if axis == "lat" {
		direction = "N"
		if value < 0 {
			direction = "S"
		}
	} else {
		direction = "E"
		if value < 0 {
			direction = "W"
		}
	}
	return fmt.Sprintf("%.6f° %s", math.Abs(value), direction)
}
