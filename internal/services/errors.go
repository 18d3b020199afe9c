package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrIO marks a local read or write failure for a specific file.
	ErrIO = errors.New("io error")
	// ErrTranscription marks any failure surfaced by the transcription
	// service, regardless of underlying cause.
	ErrTranscription = errors.New("transcription error")
	// ErrConfiguration marks a startup-time configuration problem.
	ErrConfiguration = errors.New("configuration error")
	// ErrExternalService marks a failure in an auxiliary integration such as
	// push notifications.
	ErrExternalService = errors.New("external service error")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrExternalService
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
