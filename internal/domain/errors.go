package domain

import (
	"fmt"
	"strings"
)

// ParseError reports a raw value that could not be converted to its domain
// type, such as malformed JSON or non-numeric text.
type ParseError struct {
	Option  string
	Project string
	Source  Source
	Raw     string
	Err     error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "option %q", e.Option)
	if e.Project != "" {
		fmt.Fprintf(&b, " in project %s", e.Project)
	}

	fmt.Fprintf(&b, " (%s): cannot parse %q: %v", e.Source, e.Raw, e.Err)

	return b.String()
}

// Unwrap returns the underlying conversion error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError reports a well-typed value, or combination of values,
// that is semantically invalid.
type ValidationError struct {
	Option  string
	Project string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Project != "" {
		return fmt.Sprintf("option %q in project %s: %s", e.Option, e.Project, e.Message)
	}

	return fmt.Sprintf("option %q: %s", e.Option, e.Message)
}

// SchemaError reports a defect in the option table itself. It is raised
// only while building a Registry.
type SchemaError struct {
	Option  string
	Message string
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	return fmt.Sprintf("option schema: %q: %s", e.Option, e.Message)
}

// Errors is an ordered list of configuration errors reported together.
type Errors []error

// Error implements the error interface.
func (e Errors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}

	return strings.Join(msgs, "\n")
}

// Unwrap exposes the individual errors to errors.Is and errors.As.
func (e Errors) Unwrap() []error {
	return e
}

// ErrOrNil returns e as an error, or nil when it is empty.
func (e Errors) ErrOrNil() error {
	if len(e) == 0 {
		return nil
	}

	return e
}

// appendErr flattens err into errs.
func appendErr(errs Errors, err error) Errors {
	if err == nil {
		return errs
	}

	if list, ok := err.(Errors); ok {
		return append(errs, list...)
	}

	return append(errs, err)
}
