package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrPredictionLocked      = errors.New("prediction locked")
	ErrMatchNotPredictable   = errors.New("match not predictable")
	ErrScoringConfigMissing  = errors.New("scoring config missing")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
