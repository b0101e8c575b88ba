package services

import "errors"

var (
	// ErrInvalidSchedule rejects malformed or overlapping recurring slots.
	ErrInvalidSchedule = errors.New("schedule contains invalid or overlapping slots")

	// ErrUnavailable means the requested window is outside the guide's recurring availability.
	ErrUnavailable = errors.New("requested time is outside the guide's availability")

	// ErrConflict means another active booking already occupies part of the window.
	ErrConflict = errors.New("requested time overlaps an existing booking")

	// ErrInvalidTransition rejects illegal status edges, including any move out of a terminal state.
	ErrInvalidTransition = errors.New("booking status transition not allowed")

	// ErrForbidden means the actor is not authorized for the attempted transition.
	ErrForbidden = errors.New("actor is not allowed to perform this action")

	// ErrBusy means the guide's critical section could not be acquired in time. Retryable.
	ErrBusy = errors.New("guide is handling another request, retry shortly")
)
