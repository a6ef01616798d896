package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrResumeNotFound signals a missing resume.
	ErrResumeNotFound = errors.New("resume not found")
	// ErrJobNotFound signals a missing job.
	ErrJobNotFound = errors.New("job not found")
	// ErrValidation signals invalid request input.
	ErrValidation = errors.New("validation failed")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrExtractionFailed signals that structured extraction produced no data.
	ErrExtractionFailed = errors.New("extraction failed")
)
