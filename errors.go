package mie

import (
	"github.com/jmgilman/go/errors"
)

// Error codes returned by the package. All of them are permanent: the same
// inputs always fail the same way, so nothing is worth retrying.
const (
	// CodeInvalidParameter marks a value rejected by a setter (negative or
	// NaN size, shell smaller than the core).
	CodeInvalidParameter errors.ErrorCode = "INVALID_PARAMETER"

	// CodeInconsistentLayering marks a query where only one of y and eps2 is set.
	CodeInconsistentLayering errors.ErrorCode = "INCONSISTENT_LAYERING"

	// CodeUnsupportedConfiguration marks a coated sphere with mu ≠ 1.
	CodeUnsupportedConfiguration errors.ErrorCode = "UNSUPPORTED_CONFIGURATION"

	// CodeMissingParameter marks a query issued before x and eps are known.
	CodeMissingParameter errors.ErrorCode = "MISSING_PARAMETER"

	// CodeInvalidAngle marks a scattering-angle cosine outside [-1, 1].
	CodeInvalidAngle errors.ErrorCode = "INVALID_ANGLE"
)

// CodeOf returns the error code carried by err, or errors.CodeUnknown.
func CodeOf(err error) errors.ErrorCode {
	return errors.GetCode(err)
}

func invalidParameter(name string, value interface{}, format string, args ...interface{}) error {
	err := errors.Newf(CodeInvalidParameter, format, args...)
	err = errors.WithContext(err, "parameter", name)
	return errors.WithContext(err, "value", value)
}
