package vision

import "strings"

// ExtractTikZ cleans a model response down to bare TikZ source. Markdown
// code fences are stripped first; then, if a tikzpicture environment is
// present, everything outside it is discarded. Responses with neither come
// back trimmed but otherwise unchanged, and a fence-only response yields
// the empty string.
func ExtractTikZ(response string) string {
	if strings.Contains(response, "```") {
		var code []string
		inFence := false
		for _, line := range strings.Split(response, "\n") {
			if strings.HasPrefix(strings.TrimSpace(line), "```") {
				inFence = !inFence
				continue
			}
			if inFence {
				code = append(code, line)
			}
		}
		if len(code) > 0 {
			response = strings.Join(code, "\n")
		}
	}

	if start := strings.Index(response, `\begin{tikzpicture}`); start != -1 {
		if end := strings.Index(response, `\end{tikzpicture}`); end != -1 {
			response = response[start : end+len(`\end{tikzpicture}`)]
		}
	}

	return strings.TrimSpace(response)
}
