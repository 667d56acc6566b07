package tikz

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tsunghan-wu/syn-math/model"
)

// ptPerCM is the TikZ unit conversion: 1cm = 28.45pt.
const ptPerCM = 28.45

var (
	literalCoordRe = regexp.MustCompile(`^([-\d.]+)\s*,\s*([-\d.]+)$`)
	lengthRe       = regexp.MustCompile(`^([\d.]+)\s*(cm|pt|mm)?$`)
	dotSizeRe      = regexp.MustCompile(`^([\d.]+)\s*(pt|cm|mm)?$`)

	defMacroRe        = regexp.MustCompile(`\\def\\([a-zA-Z]+)\{([^}]+)\}`)
	newcommandMacroRe = regexp.MustCompile(`\\newcommand\{\\([a-zA-Z]+)\}\{([^}]+)\}`)
)

// resolveCoordinate resolves a single TikZ coordinate token. It accepts a
// literal "x,y" pair of signed decimals, or a bare name present in the
// symbol table. Relative offsets (++(1,0)), calc expressions
// (($(A)!0.5!(B)$)) and every other form are not resolved: the second
// return value is false and callers must skip the primitive.
func resolveCoordinate(token string, symbols map[string]model.Point) (model.Point, bool) {
	token = strings.TrimSpace(token)

	if p, ok := symbols[token]; ok {
		return p, true
	}

	if m := literalCoordRe.FindStringSubmatch(token); m != nil {
		x, errX := strconv.ParseFloat(m[1], 64)
		y, errY := strconv.ParseFloat(m[2], 64)
		if errX == nil && errY == nil {
			return model.Point{X: x, Y: y}, true
		}
	}

	return model.Point{}, false
}

// extractMacros collects \def\name{value} and \newcommand{\name}{value}
// definitions into a replacement table.
func extractMacros(source string) map[string]string {
	macros := make(map[string]string)

	for _, m := range defMacroRe.FindAllStringSubmatch(source, -1) {
		macros[strings.TrimSpace(m[1])] = strings.TrimSpace(m[2])
	}
	for _, m := range newcommandMacroRe.FindAllStringSubmatch(source, -1) {
		macros[strings.TrimSpace(m[1])] = strings.TrimSpace(m[2])
	}

	return macros
}

// resolveMacro substitutes a macro reference like \r with its replacement
// text. Values that are not macro references, and references to unknown
// macros, pass through unchanged.
func resolveMacro(value string, macros map[string]string) string {
	value = strings.TrimSpace(value)

	if strings.HasPrefix(value, `\`) {
		if replacement, ok := macros[value[1:]]; ok {
			return replacement
		}
	}

	return value
}

// parseLength parses a radius or length value and normalizes it to cm
// (the TikZ base unit): pt divides by 28.45, mm divides by 10, unsuffixed
// numbers are assumed to be cm already. Macro references are resolved
// first. Returns false when the value cannot be parsed at all.
func parseLength(value string, macros map[string]string) (float64, bool) {
	value = resolveMacro(value, macros)

	if m := lengthRe.FindStringSubmatch(value); m != nil {
		v, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			switch m[2] {
			case "pt":
				v /= ptPerCM
			case "mm":
				v /= 10
			}
			return v, true
		}
	}

	if v, err := strconv.ParseFloat(value, 64); err == nil {
		return v, true
	}

	return 0, false
}

// parseDotSize parses a point marker's display size and normalizes it to
// pt (the conventional unit for marker radii): cm multiplies by 28.45,
// mm by 2.845, unsuffixed numbers are assumed to be pt already.
func parseDotSize(value string) (float64, bool) {
	if m := dotSizeRe.FindStringSubmatch(value); m != nil {
		v, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			switch m[2] {
			case "cm":
				v *= ptPerCM
			case "mm":
				v *= 2.845
			}
			return v, true
		}
	}

	return 0, false
}
