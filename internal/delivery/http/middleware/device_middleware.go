package middleware

import (
	"context"
	"net/http"
	"strings"

	"shade-storefront/internal/domain"
	"shade-storefront/pkg/logger"
	"shade-storefront/pkg/utils"
)

const DeviceCookieName = "deviceToken"

// NewDeviceMiddleware identifies the visitor's device. A valid token from the
// Authorization header or the device cookie is reused; otherwise a new device
// id is minted and returned as a cookie.
func NewDeviceMiddleware(tokens *utils.DeviceTokens, secureCookie bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			deviceID := ""
			if tokenString := deviceToken(r); tokenString != "" {
				if id, err := tokens.Validate(tokenString); err == nil {
					deviceID = id
				} else {
					logger.WithContext(r.Context()).Debug().Err(err).Msg("Rejected device token")
				}
			}

			if deviceID == "" {
				deviceID = utils.NewDeviceID()
				signed, err := tokens.Issue(deviceID)
				if err != nil {
					logger.WithContext(r.Context()).Error().Err(err).Msg("Failed to issue device token")
					utils.WriteError(w, http.StatusInternalServerError, "Failed to identify device")
					return
				}
				http.SetCookie(w, &http.Cookie{
					Name:     DeviceCookieName,
					Value:    signed,
					Path:     "/",
					MaxAge:   int(tokens.Expiry().Seconds()),
					HttpOnly: true,
					Secure:   secureCookie,
					SameSite: http.SameSiteLaxMode,
				})
			}

			l := logger.WithDeviceID(*logger.WithContext(r.Context()), deviceID)
			ctx := logger.NewContext(r.Context(), &l)
			ctx = context.WithValue(ctx, domain.DeviceContextKey, deviceID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func deviceToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	if cookie, err := r.Cookie(DeviceCookieName); err == nil {
		return cookie.Value
	}
	return ""
}
