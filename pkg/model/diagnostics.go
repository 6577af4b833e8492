package model

import "fmt"

// Severity classifies a validation diagnostic.
type Severity string

const (
	// SeverityError marks a problem that makes the model unusable.
	SeverityError Severity = "error"
	// SeverityWarning marks a degradation that does not prevent use.
	SeverityWarning Severity = "warning"
	// SeverityDefault marks an implicit default that was filled in for a
	// missing specification, such as a level key falling back to the first
	// attribute.
	SeverityDefault Severity = "default"
)

// Diagnostic is a single validation finding. Validate methods return ordered
// lists of diagnostics instead of failing, so a whole model can be checked in
// one pass.
type Diagnostic struct {
	Severity Severity
	Message  string
}

func errorf(format string, args ...any) Diagnostic {
	return Diagnostic{Severity: SeverityError, Message: fmt.Sprintf(format, args...)}
}

func warningf(format string, args ...any) Diagnostic {
	return Diagnostic{Severity: SeverityWarning, Message: fmt.Sprintf(format, args...)}
}

func defaultf(format string, args ...any) Diagnostic {
	return Diagnostic{Severity: SeverityDefault, Message: fmt.Sprintf(format, args...)}
}

func hasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
