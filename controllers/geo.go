package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/thangnd96/hybrid-app/api"
	"github.com/thangnd96/hybrid-app/geo"
	"github.com/thangnd96/hybrid-app/utils"
)

// GeoHandler exposes the device location with a reverse-geocoded name
type GeoHandler struct {
	locator  geo.Locator
	geocoder *api.Geocoder
	device   geo.DeviceInfo
}

// NewGeoHandler wires the geolocation surface to its collaborators
func NewGeoHandler(locator geo.Locator, geocoder *api.Geocoder, device geo.DeviceInfo) *GeoHandler {
	return &GeoHandler{locator: locator, geocoder: geocoder, device: device}
}

// ShowLocation handles GET /location. Desktop platforms get a warning
// instead of a position fix; permission errors surface as such.
func (h *GeoHandler) ShowLocation(w http.ResponseWriter, r *http.Request) {
	if !h.device.IsMobile && !h.device.IsTablet {
		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"platform": h.device.Platform,
			"warning":  "Location tracking works best in the mobile app",
		})
		return
	}

	pos, err := h.locator.Current()
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, geo.ErrPermissionDenied) {
			status = http.StatusForbidden
		}
		utils.RespondError(w, status, err.Error())
		return
	}

	displayName, err := h.geocoder.ReverseGeocode(pos.Latitude, pos.Longitude)
	if err != nil {
		// The fix itself is still useful without a resolved name.
		log.Printf("ShowLocation: reverse geocoding failed: %v", err)
		displayName = ""
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"latitude":     pos.Latitude,
		"longitude":    pos.Longitude,
		"formatted":    geo.FormatCoordinate(pos.Latitude, "lat") + " " + geo.FormatCoordinate(pos.Longitude, "lng"),
		"displayName":  displayName,
		"accuracy":     pos.Accuracy,
		"platform":     h.device.Platform,
		"nativeDevice": h.device.IsNative,
	})
}
