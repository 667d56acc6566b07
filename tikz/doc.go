// Package tikz extracts typed geometric primitives from TikZ source text.
//
// The source dialect handled here is the constrained subset of TikZ that
// vision-language models emit for 2D geometry diagrams: coordinate
// declarations, draw/fill statements for circles, polylines, point markers
// and arcs, and label nodes. It is deliberately not a full TikZ grammar:
// each statement shape is matched by a dedicated pattern, and anything a
// pattern cannot resolve is skipped rather than guessed. Precision over
// coverage is the design choice, since the input is adversarial
// model-generated text rather than human-authored code.
//
// # Extraction
//
// The main entry point is [Extract]:
//
//	elements, warnings := tikz.Extract(source, tikz.DefaultOptions())
//
// Extraction runs a fixed pipeline of independent passes: global scale,
// named-coordinate table, macro table, circles, line segments, point
// markers, arcs, then post-processing (point deduplication, tick-mark
// filtering) and relationship inference. Extract never fails on malformed
// input; it returns whatever could be recovered, plus [Warning] records for
// documented fallbacks such as an unparseable radius.
//
// # Labels and derived geometry
//
// [ExtractLabels] recovers the point-label table using five source patterns,
// including a greedy nearest-first match of standalone text nodes to nearby
// unlabeled point markers. [SplitLines] and [DeriveArcs] produce the derived
// sub-geometry (segments split at interior labeled points, inner/outer arc
// pairs between concyclic labeled points) used for per-entity segmentation
// masks.
package tikz
