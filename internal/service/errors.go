package service

import "errors"

// Failure taxonomy shared by the services. Collaborator errors are
// logged in full where they occur and surfaced to callers only as
// these generic categories.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrGeneration   = errors.New("failed to generate summary")
	ErrDelivery     = errors.New("failed to send email")
	ErrPersistence  = errors.New("failed to persist summary")
)
