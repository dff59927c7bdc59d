package customerr

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrUnauthenticated       = errors.New("unauthenticated")
	ErrPlanRequired          = errors.New("premium plan required")
	ErrValidation            = errors.New("validation failed")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrGenerationFailed      = errors.New("report generation failed")
	ErrLimitExceeded         = errors.New("limit exceeded")
	ErrNotFound              = errors.New("not found")
)

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// DependencyError marks a failed identity or storage call. The cause stays reachable.
type DependencyError struct {
	Dependency string
	Err        error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Dependency, e.Err)
}

func (e *DependencyError) Unwrap() error {
	return e.Err
}

func (e *DependencyError) Is(target error) bool {
	return target == ErrDependencyUnavailable
}

type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("report generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

type LimitError struct {
	Err string
}

func (e *LimitError) Error() string {
	return e.Err
}

func (e *LimitError) Is(target error) bool {
	return target == ErrLimitExceeded
}

// Dependency wraps err as a DependencyError unless it already carries a domain kind.
func Dependency(name string, err error) error {
	if err == nil {
		return nil
	}
	if IsDomain(err) {
		return err
	}
	return &DependencyError{Dependency: name, Err: err}
}

// IsDomain reports whether err already belongs to one of the kinds above.
func IsDomain(err error) bool {
	for _, kind := range []error{
		ErrUnauthenticated, ErrPlanRequired, ErrValidation,
		ErrDependencyUnavailable, ErrGenerationFailed, ErrLimitExceeded,
	} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}
