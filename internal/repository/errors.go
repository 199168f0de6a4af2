package repository

import "errors"

var (
	ErrPlanNotFound    = errors.New("plan not found")
	ErrInvalidFilename = errors.New("invalid plan filename")
	ErrCoachNotFound   = errors.New("coach not found")
	ErrDuplicateCoach  = errors.New("coach display name already taken")
	ErrSessionNotFound = errors.New("session not found")
)
