// Package xsection derives 2D geometry from planar cross-sections of a
// 3D device assembly. It projects cross-section polygon fragments into
// plane coordinates, builds a containment forest per part, resolves
// cavities against the 3D solid model, and assembles the surviving
// polygons into a geometry.Geo2D.
package xsection
