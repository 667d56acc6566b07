package vision

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
)

// Example is one few-shot reference: a reasoning trace paired with the
// TikZ code it produced.
type Example struct {
	Index     int    `json:"index"`
	ImagePath string `json:"image_path,omitempty"`
	TikZCode  string `json:"tikz_code"`
	Reasoning string `json:"reasoning,omitempty"`
}

// LoadExamples reads every *.json file in dir as one Example, sorted by
// filename for stable ordering. Files that fail to parse are reported,
// not skipped silently.
func LoadExamples(dir string) ([]Example, error) {
	entries, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("listing examples in %s: %w", dir, err)
	}
	sort.Strings(entries)

	examples := make([]Example, 0, len(entries))
	for _, path := range entries {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading example %s: %w", path, err)
		}
		var ex Example
		if err := json.Unmarshal(data, &ex); err != nil {
			return nil, fmt.Errorf("parsing example %s: %w", path, err)
		}
		if ex.TikZCode == "" {
			return nil, fmt.Errorf("example %s has no tikz_code", path)
		}
		examples = append(examples, ex)
	}
	return examples, nil
}

// SampleExamples picks up to n examples uniformly at random without
// replacement. A nil rng keeps the original order and truncates.
func SampleExamples(examples []Example, n int, rng *rand.Rand) []Example {
	if n >= len(examples) {
		return examples
	}
	if rng == nil {
		return examples[:n]
	}
	picked := make([]Example, len(examples))
	copy(picked, examples)
	rng.Shuffle(len(picked), func(i, j int) {
		picked[i], picked[j] = picked[j], picked[i]
	})
	return picked[:n]
}
