package domain

import "go.trai.ch/zerr"

var (
	// ErrUnsupportedPlatform is returned when a platform string is not part of the supported enumeration.
	ErrUnsupportedPlatform = zerr.New("unsupported platform")

	// ErrMalformedConstraint is returned when a dependency entry cannot be parsed into a constraint.
	ErrMalformedConstraint = zerr.New("malformed constraint")

	// ErrDescriptorNotFound is returned when a referenced descriptor file does not exist.
	ErrDescriptorNotFound = zerr.New("descriptor not found")

	// ErrDescriptorCycle is returned when descriptor inheritance forms a cycle.
	ErrDescriptorCycle = zerr.New("descriptor inheritance cycle")

	// ErrResolutionFailed is returned when the external solver cannot satisfy a constraint set.
	ErrResolutionFailed = zerr.New("resolution failed")

	// ErrValidationFailed is returned when the validation pipeline fails for a target.
	ErrValidationFailed = zerr.New("validation failed")

	// ErrToolMissing is returned when an external tool binary is not installed.
	ErrToolMissing = zerr.New("external tool not found")

	// ErrToolTimeout is returned when an external tool invocation exceeds its deadline.
	ErrToolTimeout = zerr.New("external tool timed out")

	// ErrNoDescriptors is returned when the workspace manifest declares no descriptors.
	ErrNoDescriptors = zerr.New("no descriptors configured")

	// ErrCycleFailed is returned by the orchestrator when any target in the
	// matrix fails and the update proposal is withheld.
	ErrCycleFailed = zerr.New("update cycle failed")
)
