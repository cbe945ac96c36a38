// Package usecase implements the business logic for the resume feature.
package usecase

import "errors"

var (
	// ErrNotFound is returned when no resume matches both the ID and the owner.
	ErrNotFound = errors.New("resume not found")

	// ErrValidation is returned for documents or requests that break an invariant.
	ErrValidation = errors.New("validation failed")

	// ErrGenerationFailed is returned when the language model call fails or
	// yields no usable bullet points.
	ErrGenerationFailed = errors.New("bullet generation failed")

	// ErrRenderFailed is returned when the PDF cannot be produced.
	ErrRenderFailed = errors.New("pdf rendering failed")
)
