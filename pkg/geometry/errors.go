package geometry

import "fmt"

// DuplicateNameError reports an attempt to add an entity under a name that
// is already taken, without the overwrite flag set.
type DuplicateNameError struct {
	Kind string // "part", "edge", "cross-section", "fragment"
	Name string
}

func (e DuplicateNameError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Kind, e.Name)
}

// NotFoundError reports a lookup or removal of a name that does not exist.
type NotFoundError struct {
	Kind string
	Name string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %q does not exist", e.Kind, e.Name)
}

// InvalidPolygonError reports a polygon that fails geometric validation.
type InvalidPolygonError struct {
	Name   string
	Reason string
}

func (e InvalidPolygonError) Error() string {
	return fmt.Sprintf("polygon %q is invalid: %s", e.Name, e.Reason)
}
