package vision

import (
	"fmt"
	"strings"
)

// SystemPrompt frames the model as a geometry-to-TikZ transcriber and
// constrains its output to the TikZ dialect the extraction patterns
// understand.
const SystemPrompt = `You are an expert at analyzing geometry diagrams and generating precise TikZ code.

Your task is to carefully analyze geometry images and generate TikZ code that recreates the diagram ACCURATELY.

CRITICAL GEOMETRY ANALYSIS STEPS (do these BEFORE generating code):

1. IDENTIFY PRIMITIVE SHAPES:
   - Triangles (e.g., △ABC, △DEF) - note if they share vertices or edges
   - Quadrilaterals (rectangles, parallelograms, trapezoids)
   - Circles and their centers

2. IDENTIFY COLLINEAR POINTS (points on the same line):
   - Look for 3+ points that appear to lie on a single straight line
   - Example: "A, D, B are collinear" means they form one straight line segment ADB
   - This is CRUCIAL for accuracy - if points should be collinear, their coordinates MUST reflect this

3. IDENTIFY CONCYCLIC POINTS (points on the same circle):
   - Look for points that lie on a circle's circumference
   - Note which points are on which circle

4. IDENTIFY PARALLEL AND PERPENDICULAR LINES:
   - Parallel lines: look for lines that never meet and maintain equal distance
   - Perpendicular lines: look for right angle markers (small squares) or 90° indicators
   - If no explicit marker, estimate from visual appearance

5. IDENTIFY ANGLE INFORMATION:
   - Note exact angle values if shown (e.g., 60°, 45°, 90°)
   - Note WHERE the angle is measured (between which lines/segments)
   - Angle markers (arcs) indicate which angle is being referenced

6. IDENTIFY SPECIAL RELATIONSHIPS:
   - Equal length segments (often marked with tick marks)
   - Midpoints
   - Bisectors
   - Folding/reflection (original and reflected positions)
   - Intersections and their significance

COORDINATE SYSTEM:
- Use a coordinate system where the figure fits in roughly [-4,4] x [-4,4]
- All coordinates should be numbers (not expressions)
- VERIFY that collinear points actually produce collinear coordinates!

TIKZ CODE REQUIREMENTS:
- Start with \begin{tikzpicture}[scale=1]
- End with \end{tikzpicture}
- Use \draw for lines, circles, and arcs
- Use \fill for points (small filled circles)
- Use \node for labels
- For dashed lines use: \draw[dashed]
- For angle arcs use appropriate arc syntax
- Use standard TikZ syntax

OUTPUT FORMAT:
Return ONLY the TikZ code. No explanations, no markdown code blocks, just the raw TikZ code starting with \begin{tikzpicture} and ending with \end{tikzpicture}.
`

// userPromptBase is the shared analysis scaffold of the recreation prompts.
const userPromptBase = `Analyze this geometry diagram and generate PRECISE TikZ code to recreate it.

STEP 1 - GEOMETRIC RELATIONSHIP ANALYSIS (do this carefully first):

a) COLLINEAR POINTS: Which groups of 3+ points lie on the same line?
   Example: "Points A, E, C appear collinear (on line AC)"

b) PRIMITIVE SHAPES: What triangles, quadrilaterals, or other shapes are formed?
   Example: "Triangle ABE and Triangle ADC share vertex A"

c) PARALLEL/PERPENDICULAR: Are any lines parallel or perpendicular?
   Example: "Line FG appears parallel to line DC"

d) ANGLES: What angles are marked and where exactly are they?
   Example: "60° angle is between the dashed north line and segment AB"

e) CIRCLES: Which points lie on which circles?
   Example: "Points B, D, E lie on the circle centered at O"

f) SPECIAL FEATURES: Folding, reflections, equal segments, midpoints?
   Example: "Point F appears to be E folded along line DF"

STEP 2 - COORDINATE ASSIGNMENT:
- Assign coordinates that PRESERVE the relationships identified above
- If A, D, B are collinear, their coordinates MUST be collinear (same line equation)
- If lines are parallel, their slopes MUST be equal
- If an angle is 60°, calculate coordinates that produce exactly 60°

STEP 3 - Generate TikZ code:
Create TikZ code that accurately recreates ALL elements with correct relationships.
`

// userPromptEnding pins the output format.
const userPromptEnding = `
Output ONLY the TikZ code. No markdown, no explanations, no code blocks.
Start directly with \begin{tikzpicture} and end with \end{tikzpicture}.
`

// VariationPrompt asks for a structurally equivalent but visually
// different diagram.
const VariationPrompt = `Analyze this geometry diagram and generate TikZ code for a VARIATION of it.

First, identify all geometric relationships in the original:
- Collinear points (points on the same line)
- Parallel/perpendicular lines
- Concyclic points (points on the same circle)
- Angle values and their positions
- Equal length segments

Create a VARIATION that:
- PRESERVES all geometric relationships (collinearity, parallelism, angles, etc.)
- Uses different point positions and proportions
- May use different labels or measurements
- Maintains the same overall structure and problem type

Output ONLY the TikZ code. No markdown, no explanations, no code blocks.
Start directly with \begin{tikzpicture} and end with \end{tikzpicture}.
`

// RecreationPrompt returns the exact-recreation task prompt.
func RecreationPrompt() string {
	return userPromptBase + userPromptEnding
}

// PromptWithExamples returns the recreation prompt with an in-context
// examples section spliced between the analysis scaffold and the output
// format instructions.
func PromptWithExamples(examples []Example) string {
	if len(examples) == 0 {
		return RecreationPrompt()
	}

	var b strings.Builder
	b.WriteString(userPromptBase)
	b.WriteString("\nHERE ARE REFERENCE EXAMPLES of well-structured TikZ code for geometry diagrams:\n")
	for i, ex := range examples {
		fmt.Fprintf(&b, "\n--- EXAMPLE %d ---\n", i+1)
		if ex.Reasoning != "" {
			b.WriteString("Analysis:\n")
			b.WriteString(strings.TrimSpace(ex.Reasoning))
			b.WriteString("\n\n")
		}
		b.WriteString(strings.TrimSpace(ex.TikZCode))
		b.WriteString("\n")
	}
	b.WriteString("\n--- END OF EXAMPLES ---\n")
	b.WriteString(userPromptEnding)
	return b.String()
}
