package data

import "fmt"

// FieldNotFoundError reports a projection that requested a column absent
// from the row being projected.
type FieldNotFoundError struct {
	Field string
}

func (e *FieldNotFoundError) Error() string {
	return fmt.Sprintf("field %q not present in row", e.Field)
}
