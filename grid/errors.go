package grid

import "fmt"

// DimensionMismatchError reports a field whose shape disagrees with the
// grid it belongs to.
type DimensionMismatchError struct {
	Field string
	Want  Size
	Got   Size
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("field %s has dimensions %s, expected %s", e.Field, e.Got, e.Want)
}

// InvalidDimensionsError reports an inner extent that cannot describe a
// grid.
type InvalidDimensionsError struct {
	IMax, JMax int64
	Reason     string
}

func (e *InvalidDimensionsError) Error() string {
	return fmt.Sprintf("invalid grid dimensions imax=%d jmax=%d: %s", e.IMax, e.JMax, e.Reason)
}

// ValidateDimensions checks that imax and jmax are positive.
func ValidateDimensions(imax, jmax int64) error {
	if imax <= 0 || jmax <= 0 {
		return &InvalidDimensionsError{IMax: imax, JMax: jmax, Reason: "must be positive"}
	}
	return nil
}
