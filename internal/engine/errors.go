package engine

import (
	"errors"
	"net/http"
)

// Error is a lifecycle failure with a stable machine-readable code and an
// HTTP status hint for the transport layer. Messages are safe to show to end
// users.
type Error struct {
	Code       string
	Message    string
	HTTPStatus int
}

func (e *Error) Error() string {
	return e.Message
}

var (
	ErrCustomerNotFound = &Error{"CUSTOMER_NOT_FOUND", "customer not found", http.StatusNotFound}
	ErrAccountInactive  = &Error{"ACCOUNT_INACTIVE", "account is deactivated", http.StatusForbidden}
	ErrTooManyPending   = &Error{"TOO_MANY_PENDING_ERRANDS", "too many pending errands, complete or cancel some first", http.StatusTooManyRequests}
	ErrInvalidBudget    = &Error{"INVALID_BUDGET", "base price must be positive and at least the minimum", http.StatusBadRequest}
	ErrInvalidCategory  = &Error{"INVALID_CATEGORY", "unknown errand category", http.StatusBadRequest}
	ErrInvalidUrgency   = &Error{"INVALID_URGENCY", "unknown urgency level", http.StatusBadRequest}
	ErrInvalidDistance  = &Error{"INVALID_DISTANCE", "distance cannot be negative", http.StatusBadRequest}

	ErrErrandNotFound        = &Error{"ERRAND_NOT_FOUND", "errand not found", http.StatusNotFound}
	ErrRunnerNotFound        = &Error{"RUNNER_NOT_FOUND", "runner profile not found", http.StatusNotFound}
	ErrRunnerUnavailable     = &Error{"RUNNER_UNAVAILABLE", "runner is not available or not approved", http.StatusForbidden}
	ErrDailyLimitReached     = &Error{"DAILY_LIMIT_REACHED", "daily accept limit reached", http.StatusTooManyRequests}
	ErrErrandUnavailable     = &Error{"ERRAND_UNAVAILABLE", "errand is no longer available", http.StatusConflict}
	ErrErrandAlreadyAssigned = &Error{"ERRAND_ALREADY_ASSIGNED", "errand already has a runner", http.StatusConflict}
	ErrSelfAcceptance        = &Error{"SELF_ACCEPTANCE_NOT_ALLOWED", "you cannot run your own errand", http.StatusForbidden}

	ErrNotAssignedRunner       = &Error{"NOT_ASSIGNED_RUNNER", "only the assigned runner may do this", http.StatusForbidden}
	ErrInvalidStatusTransition = &Error{"INVALID_STATUS_TRANSITION", "errand is not in the required status", http.StatusConflict}

	ErrCancellationNotAllowed     = &Error{"CANCELLATION_NOT_ALLOWED", "cancellation is not allowed at this stage, contact support", http.StatusForbidden}
	ErrTooManyCancellations       = &Error{"TOO_MANY_CANCELLATIONS", "cancellation limit reached, try again later", http.StatusTooManyRequests}
	ErrRunnerTooManyCancellations = &Error{"RUNNER_TOO_MANY_CANCELLATIONS", "runner cancellation limit reached", http.StatusTooManyRequests}
)

// HTTPStatus maps an engine failure to its transport status. Anything that is
// not a typed *Error is an infrastructure failure.
func HTTPStatus(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.HTTPStatus
	}
	return http.StatusInternalServerError
}

// Code returns the stable error code, or INTERNAL for infra failures.
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return "INTERNAL"
}
