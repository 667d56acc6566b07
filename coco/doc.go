// Package coco adapts extracted geometry into a COCO-style segmentation
// JSON document: one image record, the four fixed geometry categories, one
// annotation per primitive with its geometric parameters and an empty
// polygon segmentation placeholder, plus a metadata block carrying the
// compiled bounding box, the scale, the label table and the inferred
// relationships.
package coco
