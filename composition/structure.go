package composition

import (
	"sort"

	"github.com/tessera-app/tessera/domain"
)

// ValidateComponentStructure checks that a candidate component list is
// well-formed on its own, independent of the rest of the reference graph:
// the list is non-empty, positions form exactly the sequence 0..N-1, and
// every component carries either a prompt reference or custom text.
//
// The list may be an unpersisted draft; no fetches are performed.
func ValidateComponentStructure(components []*domain.PromptComponent) error {
	if len(components) == 0 {
		return invalidf("component list is empty")
	}

	positions := make([]int, len(components))
	for i, c := range components {
		positions[i] = c.Position
	}
	sort.Ints(positions)
	for i, p := range positions {
		if p != i {
			return invalidf("positions must be consecutive starting at 0, got %v", positions)
		}
	}

	for _, c := range components {
		if c.ComponentPromptID == nil && !hasText(c.CustomTextBefore) && !hasText(c.CustomTextAfter) {
			return invalidf("component at position %d has neither a prompt reference nor custom text", c.Position)
		}
	}

	return nil
}

func hasText(s *string) bool {
	return s != nil && *s != ""
}
