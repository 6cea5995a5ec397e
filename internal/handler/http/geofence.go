package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/staffsync/badging-backend-go/internal/domain/geofence"
	"github.com/staffsync/badging-backend-go/internal/handler/http/response"
)

type GeofenceHandler interface {
	GetSettings(w http.ResponseWriter, r *http.Request)
	UpdateSettings(w http.ResponseWriter, r *http.Request)
}

type GeofenceHandlerImpl struct {
	geofenceService geofence.GeofenceService
}

// GetSettings implements GeofenceHandler.
func (g *GeofenceHandlerImpl) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := g.geofenceService.CurrentSettings(r.Context())
	if err != nil {
		slog.Error("GetSettings service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, settings)
}

// UpdateSettings implements GeofenceHandler.
func (g *GeofenceHandlerImpl) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var updateReq geofence.UpdateSettingsRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("UpdateSettings decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	settings, err := g.geofenceService.UpdateSettings(r.Context(), updateReq)
	if err != nil {
		slog.Error("UpdateSettings service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Work location updated successfully", settings)
}

func NewGeofenceHandler(geofenceService geofence.GeofenceService) GeofenceHandler {
	return &GeofenceHandlerImpl{geofenceService: geofenceService}
}
