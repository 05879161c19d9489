package service

import "errors"

var (
	ErrValidation          = errors.New("validation failed")
	ErrInvalidOTP          = errors.New("Invalid OTP")
	ErrTooManyAttempts     = errors.New("too many OTP attempts, request a new code")
	ErrInvalidCredentials  = errors.New("invalid phone or password")
	ErrPhoneTaken          = errors.New("phone already registered")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrNotFound            = errors.New("not found")
	ErrNotActive           = errors.New("onboarding is not complete")
	ErrOrderState          = errors.New("order is not pending")
)
