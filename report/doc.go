// Package report builds a LaTeX segmentation report for one processed
// document: the original figure, longtables of its points, circles, drawn
// segments and derived arcs, and an itemized list of the inferred
// relationships. The output is LaTeX source for the external compiler, not
// a rendered artifact.
package report
