package composition

import (
	"context"

	"github.com/tessera-app/tessera/domain"
)

// memFetcher is an in-memory graph fixture implementing Fetcher.
type memFetcher map[string]*domain.Prompt

func (m memFetcher) Fetch(_ context.Context, id string) (*domain.Prompt, error) {
	p, ok := m[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// countingFetcher records how many times each id was fetched.
type countingFetcher struct {
	inner  memFetcher
	counts map[string]int
}

func newCountingFetcher(inner memFetcher) *countingFetcher {
	return &countingFetcher{inner: inner, counts: make(map[string]int)}
}

func (c *countingFetcher) Fetch(ctx context.Context, id string) (*domain.Prompt, error) {
	c.counts[id]++
	return c.inner.Fetch(ctx, id)
}

func str(s string) *string { return &s }

func plain(id, text string) *domain.Prompt {
	return &domain.Prompt{ID: id, Text: str(text)}
}

func compound(id string, components ...*domain.PromptComponent) *domain.Prompt {
	for _, c := range components {
		c.CompoundPromptID = id
	}
	return &domain.Prompt{ID: id, IsCompound: true, Components: components}
}

func ref(pos int, target string) *domain.PromptComponent {
	return &domain.PromptComponent{Position: pos, ComponentPromptID: str(target)}
}

func refText(pos int, before, target, after string) *domain.PromptComponent {
	c := &domain.PromptComponent{Position: pos, ComponentPromptID: str(target)}
	if before != "" {
		c.CustomTextBefore = str(before)
	}
	if after != "" {
		c.CustomTextAfter = str(after)
	}
	return c
}

func textOnly(pos int, before, after string) *domain.PromptComponent {
	c := &domain.PromptComponent{Position: pos}
	if before != "" {
		c.CustomTextBefore = str(before)
	}
	if after != "" {
		c.CustomTextAfter = str(after)
	}
	return c
}

// chain builds n compound prompts c1 -> c2 -> ... -> cn, with cn referencing
// a plain leaf.
func chainGraph(n int) (memFetcher, string) {
	g := memFetcher{"leaf": plain("leaf", "end")}
	ids := make([]string, n)
	for i := range ids {
		ids[i] = "c" + string(rune('1'+i))
	}
	for i, id := range ids {
		next := "leaf"
		if i < n-1 {
			next = ids[i+1]
		}
		g[id] = compound(id, ref(0, next))
	}
	return g, ids[0]
}
