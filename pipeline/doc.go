// Package pipeline drives batch document generation: for each input image
// it asks the vision service for TikZ source, compiles it, extracts the
// geometry, and writes the coordinate JSON, segmentation masks and labeled
// report into a per-document output directory. Documents are processed
// sequentially; any single failure is logged and counted, never fatal to
// the batch.
package pipeline
