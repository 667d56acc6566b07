// Package mask rasterizes extracted geometry into binary segmentation
// masks matching a compiled PNG of the same document.
//
// A [Mapper] converts abstract TikZ coordinates into pixel coordinates for
// a given image. When the compiler exported a bounding box the mapping is
// exact: coordinates are scaled to point units, offset by the page border,
// and fitted to the image dimensions. Without a bounding box a degraded
// fallback assumes the drawing origin sits at the image center with a fixed
// points-per-unit conversion; [Mapper.Degraded] reports which mode is in
// effect.
//
// Shapes are drawn with golang.org/x/image/vector: line segments as
// stroked rectangles, circles and arcs as filled annulus bands, point
// markers as filled discs. Every mask is a single-channel raster; category
// masks overlay all primitives of one kind, entity masks hold exactly one
// primitive each and are keyed by stable label strings such as "Line_AB"
// or "Arc_AB_inner".
package mask
