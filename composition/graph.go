package composition

import (
	"context"
	"errors"

	"github.com/tessera-app/tessera/domain"
)

// CheckCircularReference walks the reference graph depth-first from startID
// and reports the first cycle it finds. Only compound prompts are expanded;
// a referenced plain prompt is a leaf.
//
// Cycle detection tracks the current DFS path rather than a global visited
// set, so re-convergent sharing (two branches reaching the same descendant)
// is accepted. A referenced id that cannot be fetched is reported as an
// *InvalidComponentError.
func CheckCircularReference(ctx context.Context, startID string, fetcher Fetcher) error {
	return walkPath(ctx, startID, fetcher, nil)
}

func walkPath(ctx context.Context, id string, fetcher Fetcher, path []string) error {
	for _, seen := range path {
		if seen == id {
			cycle := append(append([]string{}, path...), id)
			return &CircularReferenceError{Path: cycle}
		}
	}

	prompt, err := fetcher.Fetch(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return invalidf("referenced prompt %s does not exist", id)
	}
	if err != nil {
		return err
	}
	if !prompt.IsCompound {
		return nil
	}

	path = append(path, id)
	for _, c := range prompt.Components {
		if c.ComponentPromptID == nil {
			continue
		}
		if err := walkPath(ctx, *c.ComponentPromptID, fetcher, path); err != nil {
			return err
		}
	}
	return nil
}

// CalculateMaxDepth computes the nesting depth of a prompt: 0 for a plain
// prompt, 1 + the deepest referenced child for a compound one (1 if it
// references no prompts at all).
//
// cache memoizes depths by id so a prompt reached through multiple branches
// is computed once. It may be nil; when supplied by the caller it must be
// scoped to a single validation run, since cached values are only valid for
// the graph snapshot observed during that run. The memo is deliberately
// separate from the path tracking in CheckCircularReference: depth is
// position-insensitive, cycle detection is not.
func CalculateMaxDepth(ctx context.Context, id string, fetcher Fetcher, cache map[string]int) (int, error) {
	if cache == nil {
		cache = make(map[string]int)
	}
	return maxDepth(ctx, id, fetcher, cache, 0)
}

func maxDepth(ctx context.Context, id string, fetcher Fetcher, cache map[string]int, level int) (int, error) {
	if d, ok := cache[id]; ok {
		return d, nil
	}
	// Terminates the walk on graphs that were never cycle-checked; any chain
	// this long is over the bound regardless of what lies below it.
	if level > MaxNestingDepth {
		return 0, &MaxDepthExceededError{Limit: MaxNestingDepth, Actual: level}
	}

	prompt, err := fetcher.Fetch(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return 0, invalidf("referenced prompt %s does not exist", id)
	}
	if err != nil {
		return 0, err
	}

	if !prompt.IsCompound {
		cache[id] = 0
		return 0, nil
	}

	depth := 1
	for _, c := range prompt.Components {
		if c.ComponentPromptID == nil {
			continue
		}
		childDepth, err := maxDepth(ctx, *c.ComponentPromptID, fetcher, cache, level+1)
		if err != nil {
			return 0, err
		}
		if 1+childDepth > depth {
			depth = 1 + childDepth
		}
	}
	if depth > MaxNestingDepth {
		return 0, &MaxDepthExceededError{Limit: MaxNestingDepth, Actual: depth}
	}

	cache[id] = depth
	return depth, nil
}

// ValidateComponent checks whether attaching componentID as a reference of
// compoundID would keep the graph acyclic and within the nesting bound. It is
// used when editing a compound prompt, before the new component set is
// persisted; compoundID itself need not exist in storage.
func ValidateComponent(ctx context.Context, compoundID, componentID string, fetcher Fetcher) error {
	if componentID == compoundID {
		return &CircularReferenceError{Path: []string{compoundID, componentID}}
	}

	// Seeding the path with compoundID turns "is compoundID reachable from
	// componentID" into ordinary path-revisit detection, and also surfaces
	// pre-existing cycles below componentID.
	if err := walkPath(ctx, componentID, fetcher, []string{compoundID}); err != nil {
		return err
	}

	depth, err := CalculateMaxDepth(ctx, componentID, fetcher, nil)
	if err != nil {
		return err
	}
	if depth+1 > MaxNestingDepth {
		return &MaxDepthExceededError{Limit: MaxNestingDepth, Actual: depth + 1}
	}
	return nil
}
