// Package render compiles TikZ source to PNG images via external tools.
//
// Compilation is a two-stage subprocess pipeline: pdflatex produces a PDF
// from the (wrapped) source, then pdftoppm converts it to PNG at the
// requested DPI, falling back to ImageMagick's convert when pdftoppm is
// unavailable or fails. Each compilation runs in its own temporary
// directory so concurrent compilations never collide.
//
// [Compiler.CompileWithCoords] additionally instruments the document to
// export the picture's bounding box in point units, which downstream mask
// rasterization needs for exact pixel mapping. Plain [Compiler.Compile]
// omits the instrumentation.
//
// Bare TikZ snippets (anything without a \documentclass) are wrapped in a
// fixed standalone preamble with a 10pt border before compilation.
package render
