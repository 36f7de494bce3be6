// Package errors provides centralized error handling with optional telemetry reporting.
package errors

import (
	stderrors "errors"
	"fmt"
	"maps"
	"sync/atomic"
	"time"
)

// ErrorCategory represents the type of error for better categorization.
type ErrorCategory string

const (
	CategoryValidation    ErrorCategory = "validation"
	CategoryNotFound      ErrorCategory = "not-found"
	CategorySignal        ErrorCategory = "signal-processing"
	CategoryFileIO        ErrorCategory = "file-io"
	CategoryDatabase      ErrorCategory = "database"
	CategoryConfiguration ErrorCategory = "configuration"
	CategoryGeneric       ErrorCategory = "generic"
)

// EnhancedError wraps an error with component, category and context metadata.
type EnhancedError struct {
	Err       error
	Component string
	Category  ErrorCategory
	Context   map[string]any
	Timestamp time.Time
}

// Error implements the error interface.
func (ee *EnhancedError) Error() string {
	return ee.Err.Error()
}

// Unwrap implements the error unwrapping interface.
func (ee *EnhancedError) Unwrap() error {
	return ee.Err
}

// Is matches two enhanced errors by category, so callers can compare against
// a bare category sentinel without caring about the wrapped message.
func (ee *EnhancedError) Is(target error) bool {
	if other, ok := target.(*EnhancedError); ok {
		return ee.Category == other.Category
	}
	return stderrors.Is(ee.Err, target)
}

// GetContext returns a copy of the context data.
func (ee *EnhancedError) GetContext() map[string]any {
	if ee.Context == nil {
		return nil
	}
	cp := make(map[string]any, len(ee.Context))
	maps.Copy(cp, ee.Context)
	return cp
}

// Reporter receives built errors for telemetry forwarding.
type Reporter interface {
	ReportError(ee *EnhancedError)
}

var activeReporter atomic.Pointer[Reporter]

// SetReporter installs a telemetry reporter. Passing nil disables reporting.
func SetReporter(r Reporter) {
	if r == nil {
		activeReporter.Store(nil)
		return
	}
	activeReporter.Store(&r)
}

// ErrorBuilder provides a fluent interface for creating enhanced errors.
type ErrorBuilder struct {
	err       error
	component string
	category  ErrorCategory
	context   map[string]any
}

// New creates a new error builder wrapping err.
func New(err error) *ErrorBuilder {
	return &ErrorBuilder{err: err}
}

// Newf creates a new error builder from a formatted message.
func Newf(format string, args ...any) *ErrorBuilder {
	return New(fmt.Errorf(format, args...))
}

// Component sets the component name.
func (eb *ErrorBuilder) Component(component string) *ErrorBuilder {
	eb.component = component
	return eb
}

// Category sets the error category for better grouping.
func (eb *ErrorBuilder) Category(category ErrorCategory) *ErrorBuilder {
	eb.category = category
	return eb
}

// Context adds context data to the error.
func (eb *ErrorBuilder) Context(key string, value any) *ErrorBuilder {
	if eb.context == nil {
		eb.context = make(map[string]any)
	}
	eb.context[key] = value
	return eb
}

// Build creates the EnhancedError and forwards it to the reporter if one is set.
func (eb *ErrorBuilder) Build() *EnhancedError {
	ee := &EnhancedError{
		Err:       eb.err,
		Component: eb.component,
		Category:  eb.category,
		Context:   eb.context,
		Timestamp: time.Now(),
	}
	if ee.Category == "" {
		ee.Category = CategoryGeneric
	}
	if rp := activeReporter.Load(); rp != nil {
		(*rp).ReportError(ee)
	}
	return ee
}

// HasCategory reports whether err (or anything it wraps) carries the category.
func HasCategory(err error, category ErrorCategory) bool {
	var ee *EnhancedError
	if stderrors.As(err, &ee) {
		return ee.Category == category
	}
	return false
}

// IsNotFound reports whether err is a not-found failure, i.e. a scan or peak
// search that completed without a qualifying sample.
func IsNotFound(err error) bool {
	return HasCategory(err, CategoryNotFound)
}

// IsValidation reports whether err is an invalid-input failure.
func IsValidation(err error) bool {
	return HasCategory(err, CategoryValidation)
}

// Standard library passthroughs so callers only import one errors package.

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// NewStd creates a standard error without enhancement, for sentinel errors.
func NewStd(text string) error {
	return stderrors.New(text)
}
