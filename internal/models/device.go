package models

import "github.com/golang-jwt/jwt/v5"

// DeviceClaims identify one browser/device. Cart and session state is scoped to it.
type DeviceClaims struct {
	DeviceID string `json:"device_id"`
	jwt.RegisteredClaims
}

type DeviceToken struct {
	DeviceID  string `json:"device_id"`
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}
