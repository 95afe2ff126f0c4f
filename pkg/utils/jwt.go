package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DeviceTokens signs and verifies the long-lived device cookie. The token's
// subject is the device id that scopes a visitor's snapshots.
type DeviceTokens struct {
	secret []byte
	expiry time.Duration
}

func NewDeviceTokens(secret string, expiry time.Duration) *DeviceTokens {
	return &DeviceTokens{secret: []byte(secret), expiry: expiry}
}

func (d *DeviceTokens) Expiry() time.Duration {
	return d.expiry
}

// Issue returns a signed token for deviceID.
func (d *DeviceTokens) Issue(deviceID string) (string, error) {
	if len(d.secret) == 0 {
		return "", fmt.Errorf("device token secret not set")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   deviceID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(d.expiry)),
	})
	return token.SignedString(d.secret)
}

// Validate checks the signature and expiry and returns the device id.
func (d *DeviceTokens) Validate(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return d.secret, nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", fmt.Errorf("invalid token")
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", fmt.Errorf("invalid device id: %w", err)
	}
	return claims.Subject, nil
}

// NewDeviceID returns a fresh random device id.
func NewDeviceID() string {
	return uuid.NewString()
}
