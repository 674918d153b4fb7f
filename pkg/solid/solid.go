// Package solid defines the contract to the external solid-geometry
// service. Implementations (sdfx) provide 3D point-membership queries
// behind this interface, scoped to a document handle so that session
// state is acquired and released explicitly.
package solid

// Service loads solid-model documents. A service may hand out many
// documents, but a single document must not be shared between concurrent
// cross-section extractions; parallel workers load their own.
type Service interface {
	// LoadDocument activates the service's solid model and returns a
	// scoped handle. The caller must Close the handle on every exit path.
	LoadDocument() (Document, error)
}

// Document is an activated solid-model document holding named solids.
type Document interface {
	// IsInside reports whether the 3D point p lies inside the named solid,
	// within tolerance tol (in the geometry's length unit). When exact is
	// set the implementation must use a robust membership test rather than
	// a fast approximation.
	IsInside(solidName string, p [3]float64, tol float64, exact bool) (bool, error)

	// Solids returns the names of the solids in the document, sorted.
	Solids() []string

	// Close releases the document's session state. Close is idempotent;
	// queries after Close fail.
	Close() error
}
