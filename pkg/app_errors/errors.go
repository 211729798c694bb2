package apperrors

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEventNotFound        = errors.New("event not found")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrNotificationNotFound = errors.New("notification not found")

	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("username or email already registered")
	ErrUserBanned         = errors.New("user is banned from the platform")
	ErrForbidden          = errors.New("not enough permissions")

	ErrNoAttendees      = errors.New("add at least one attendee")
	ErrTooManyAttendees = errors.New("maximum 10 attendees")

	ErrEventNotApproved    = errors.New("event is not approved")
	ErrRegistrationClosed  = errors.New("registration is not open for this event")
	ErrAlreadyRegistered   = errors.New("already registered for this event")
	ErrInvalidTransition   = errors.New("invalid registration status transition")
	ErrDuplicateSubmission = errors.New("duplicate submission in flight")
	ErrInternalServerError = errors.New("internal server error")
)
