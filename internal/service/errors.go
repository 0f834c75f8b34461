package service

import "errors"

var (
	// ErrNotFound is returned when a slug or id matches nothing
	ErrNotFound = errors.New("not found")

	// ErrContentUnavailable is returned while no content snapshot could be loaded
	ErrContentUnavailable = errors.New("content unavailable")

	// ErrUpstream is returned when a call to the content API fails
	ErrUpstream = errors.New("content API request failed")

	// ErrInvalidCredentials is returned for an unknown email or wrong password
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailTaken is returned when registering with an email already in use
	ErrEmailTaken = errors.New("email already registered")

	// ErrSummaryUnavailable is returned when the summary model fails
	ErrSummaryUnavailable = errors.New("summary generation failed")

	// ErrSelfDemotion is returned when an admin tries to drop their own admin role
	ErrSelfDemotion = errors.New("cannot demote yourself")

	// ErrSelfDeletion is returned when an admin tries to delete their own account
	ErrSelfDeletion = errors.New("cannot delete your own account")
)
