package store

import "errors"

var (
	// ErrNotFound reports an operation against a profile id that does not exist.
	ErrNotFound = errors.New("profile not found")

	// ErrPromptNotReady reports an attempt to mark the image stage done before
	// the prompt stage completed. The drivers never issue this call by
	// construction; the store rejects it as a defensive invariant check.
	ErrPromptNotReady = errors.New("prompt stage not complete")
)
