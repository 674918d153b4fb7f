// Package geometry defines the 2D and 3D device geometry data model:
// named 3D parts with construction and domain metadata, named planar
// cross-section definitions, and the 2D geometry (polygons and edges)
// produced by cross-section extraction.
package geometry
