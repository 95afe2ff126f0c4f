package v1

import (
	"net/http"

	"shade-storefront/internal/domain"
	"shade-storefront/internal/usecase"
	"shade-storefront/pkg/logger"
	"shade-storefront/pkg/utils"
)

// openStorefront resolves the storefront of the device the request came
// from. It writes the error response itself and reports false on failure.
func openStorefront(w http.ResponseWriter, r *http.Request, uc *usecase.StorefrontUsecase) (*usecase.Storefront, bool) {
	deviceID, ok := r.Context().Value(domain.DeviceContextKey).(string)
	if !ok || deviceID == "" {
		utils.WriteError(w, http.StatusUnauthorized, "Unknown device")
		return nil, false
	}

	sf, err := uc.Open(r.Context(), deviceID)
	if err != nil {
		logger.WithContext(r.Context()).Error().Err(err).Msg("Failed to open storefront")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to load storefront")
		return nil, false
	}
	return sf, true
}
