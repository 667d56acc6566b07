// Package model provides the intermediate representation (IR) for geometry
// extracted from TikZ source.
//
// This package defines the user-facing data structures that represent the
// typed primitives of a diagram. All parsing and derivation operations
// ultimately produce these types, making them the primary API for consuming
// extracted geometry.
//
// # Primitives
//
// A parsed document yields an [Elements] value holding four primitive lists:
//
//   - [Dot] - filled point markers
//   - [LineSegment] - straight segments between two coordinates
//   - [Circle] - full circles with center and radius
//   - [Arc] - circular arcs with center, radius and angle range
//
// All coordinates are in abstract TikZ units (centimeters at scale 1).
// Angles are in degrees using the standard mathematical convention:
// 0 degrees points along +x and positive angles run counterclockwise.
//
// # Relationships
//
// [Relationships] records approximate incidence between primitives, detected
// under a relative tolerance: [PointOnCircle] for concyclic points and
// [PointOnLine] for collinear points. Each record retains the numeric
// evidence (distances, projection parameter) that justified the inference.
//
// # Immutability
//
// Values in this package are never mutated after construction. Derivation
// steps (line splitting, arc pairing) produce new records rather than
// editing existing ones, so parsing the same source twice yields identical
// structures.
package model
