package composition

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/tessera-app/tessera/domain"
)

// ResolvePrompt flattens a prompt into its final display text. A plain prompt
// resolves to its stored text (empty string when absent). A compound prompt
// resolves each component in ascending position order to
//
//	custom_text_before + resolved(referenced prompt) + custom_text_after
//
// with segments concatenated directly, no separator between components. This
// concatenation rule is the single definition of what a compound prompt
// means; display code must not re-derive it.
//
// A missing referenced id fails the whole resolution with an
// *InvalidComponentError. No placeholder is substituted here; that is the
// caller's concern.
func ResolvePrompt(ctx context.Context, id string, fetcher Fetcher) (string, error) {
	return resolve(ctx, id, fetcher, 0)
}

// PreviewComponents applies the same composition rule to an unpersisted
// component list, resolving references through fetcher. The owning compound
// prompt does not need to exist in storage.
func PreviewComponents(ctx context.Context, components []*domain.PromptComponent, fetcher Fetcher) (string, error) {
	return resolveComponents(ctx, components, fetcher, 0)
}

func resolve(ctx context.Context, id string, fetcher Fetcher, level int) (string, error) {
	// Validated graphs never reach this; it keeps resolution of a graph that
	// was mutated underneath us (or never validated) from recursing forever.
	if level > MaxNestingDepth {
		return "", &MaxDepthExceededError{Limit: MaxNestingDepth, Actual: level}
	}

	prompt, err := fetcher.Fetch(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return "", invalidf("referenced prompt %s does not exist", id)
	}
	if err != nil {
		return "", err
	}

	if !prompt.IsCompound {
		if prompt.Text == nil {
			return "", nil
		}
		return *prompt.Text, nil
	}

	return resolveComponents(ctx, prompt.Components, fetcher, level)
}

func resolveComponents(ctx context.Context, components []*domain.PromptComponent, fetcher Fetcher, level int) (string, error) {
	ordered := make([]*domain.PromptComponent, len(components))
	copy(ordered, components)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Position < ordered[j].Position })

	var b strings.Builder
	for _, c := range ordered {
		if c.CustomTextBefore != nil {
			b.WriteString(*c.CustomTextBefore)
		}
		if c.ComponentPromptID != nil {
			text, err := resolve(ctx, *c.ComponentPromptID, fetcher, level+1)
			if err != nil {
				return "", err
			}
			b.WriteString(text)
		}
		if c.CustomTextAfter != nil {
			b.WriteString(*c.CustomTextAfter)
		}
	}
	return b.String(), nil
}
