package model

import "errors"

// Common errors used across the application
var (
	// Session errors
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionUnavailable = errors.New("session not available")
	ErrSessionClosed      = errors.New("session closed")
	ErrCodeSpaceExhausted = errors.New("could not allocate session code")

	// Player errors
	ErrPlayerNotFound = errors.New("player not found")
	ErrNameRequired   = errors.New("name required")
	ErrNameTaken      = errors.New("name already taken")

	// Authorization errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid player token")

	// Submission errors
	ErrRateLimited = errors.New("submitting too fast")
	ErrWordInvalid = errors.New("word is invalid")
	ErrWordBlocked = errors.New("word blocked")
)
