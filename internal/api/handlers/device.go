package handlers

import (
	"log/slog"
	"net/http"

	"github.com/cursedbuild/storefront/internal/logging"
	service "github.com/cursedbuild/storefront/internal/services"
	"github.com/cursedbuild/storefront/internal/utils/response"
)

type DeviceHandler struct {
	devices service.DeviceService
}

func NewDeviceHandler(devices service.DeviceService) *DeviceHandler {
	return &DeviceHandler{devices: devices}
}

// IssueToken godoc
//	@Summary		Register a device
//	@Description	Issues a device token. The token scopes a cart and a session, the way a browser's local storage would.
//	@Tags			Devices
//	@Produce		json
//	@Success		201	{object}	models.DeviceToken		"Device token"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Router			/devices [post]
func (h *DeviceHandler) IssueToken() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := logging.FromContext(r.Context())

		token, err := h.devices.Issue(r.Context())
		if err != nil {
			logger.Error("Failed to issue device token", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusCreated, token)
	}
}
