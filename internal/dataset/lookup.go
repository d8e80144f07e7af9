package dataset

import (
	"errors"
	"fmt"
)

// ErrAssetNotFound is matched by every NotFoundError.
var ErrAssetNotFound = errors.New("dataset: asset not found")

// NotFoundError names the asset that had no matching row.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Error: Coin '%s' not found", e.Name)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrAssetNotFound
}

// Find returns the first row whose name matches exactly. Names are not unique in
// exports, so the earliest row wins.
func Find(t Table, name string) (Row, error) {
	idx, err := FindIndex(t, name)
	if err != nil {
		return Row{}, err
	}
	return t.rows[idx], nil
}

// FindIndex is Find returning the row position.
func FindIndex(t Table, name string) (int, error) {
	for i, r := range t.rows {
		if r.Name() == name {
			return i, nil
		}
	}
	return -1, &NotFoundError{Name: name}
}
