package model

import (
	"github.com/cockroachdb/errors"
)

// Sentinel errors for the model layer. Callers match them with errors.Is;
// the wrapped messages carry the entity names involved.
var (
	// ErrModelInconsistency indicates a structural contradiction in the model
	// graph: duplicate names with divergent definitions, empty required
	// collections, ambiguous default hierarchies.
	ErrModelInconsistency = errors.New("model inconsistency")

	// ErrNotFound indicates a lookup by name failed.
	ErrNotFound = errors.New("not found")

	// ErrArgument indicates a malformed reference or an invalid argument
	// value, such as an unknown ordering keyword or a locale requested on a
	// non-localizable attribute.
	ErrArgument = errors.New("invalid argument")

	// ErrHierarchy indicates a hierarchy navigation outside the hierarchy's
	// level range.
	ErrHierarchy = errors.New("hierarchy error")
)

func inconsistencyf(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrModelInconsistency)
}

func notFoundf(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrNotFound)
}

func argumentf(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrArgument)
}

func hierarchyf(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrHierarchy)
}
