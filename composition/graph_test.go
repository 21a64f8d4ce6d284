package composition

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tessera-app/tessera/domain"
)

func TestCheckCircularReference(t *testing.T) {
	ctx := context.Background()

	t.Run("plain prompt is trivially acyclic", func(t *testing.T) {
		g := memFetcher{"a": plain("a", "text")}
		assert.NoError(t, CheckCircularReference(ctx, "a", g))
	})

	t.Run("two-node cycle reported with full path", func(t *testing.T) {
		g := memFetcher{
			"a": compound("a", ref(0, "b")),
			"b": compound("b", ref(0, "a")),
		}
		err := CheckCircularReference(ctx, "a", g)
		var cre *CircularReferenceError
		require.ErrorAs(t, err, &cre)
		assert.Contains(t, cre.Path, "a")
		assert.Contains(t, cre.Path, "b")
		assert.Equal(t, cre.Path[0], cre.Path[len(cre.Path)-1])
	})

	t.Run("diamond is not a cycle", func(t *testing.T) {
		g := memFetcher{
			"a": compound("a", ref(0, "b"), ref(1, "c")),
			"b": compound("b", ref(0, "d")),
			"c": compound("c", ref(0, "d")),
			"d": plain("d", "shared"),
		}
		assert.NoError(t, CheckCircularReference(ctx, "a", g))
	})

	t.Run("missing referenced prompt", func(t *testing.T) {
		g := memFetcher{"a": compound("a", ref(0, "ghost"))}
		err := CheckCircularReference(ctx, "a", g)
		var ice *InvalidComponentError
		require.ErrorAs(t, err, &ice)
		assert.Contains(t, ice.Reason, "ghost")
	})

	t.Run("non-compound references are not expanded", func(t *testing.T) {
		// b is plain, so a dangling id inside b's stale component row is
		// never followed.
		b := plain("b", "leaf")
		b.Components = []*domain.PromptComponent{ref(0, "ghost")}
		g := memFetcher{
			"a": compound("a", ref(0, "b")),
			"b": b,
		}
		assert.NoError(t, CheckCircularReference(ctx, "a", g))
	})

	t.Run("self cycle", func(t *testing.T) {
		g := memFetcher{"a": compound("a", ref(0, "a"))}
		var cre *CircularReferenceError
		require.ErrorAs(t, CheckCircularReference(ctx, "a", g), &cre)
		assert.Equal(t, []string{"a", "a"}, cre.Path)
	})
}

func TestCalculateMaxDepth(t *testing.T) {
	ctx := context.Background()

	t.Run("plain prompt has depth zero", func(t *testing.T) {
		g := memFetcher{"a": plain("a", "text")}
		d, err := CalculateMaxDepth(ctx, "a", g, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, d)
	})

	t.Run("compound with one plain component has depth one", func(t *testing.T) {
		g := memFetcher{
			"a": compound("a", ref(0, "b")),
			"b": plain("b", "leaf"),
		}
		d, err := CalculateMaxDepth(ctx, "a", g, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, d)
	})

	t.Run("compound with only text components still counts one level", func(t *testing.T) {
		g := memFetcher{"a": compound("a", textOnly(0, "just text", ""))}
		d, err := CalculateMaxDepth(ctx, "a", g, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, d)
	})

	t.Run("depth follows the deepest branch", func(t *testing.T) {
		g := memFetcher{
			"a":    compound("a", ref(0, "leaf"), ref(1, "mid")),
			"mid":  compound("mid", ref(0, "leaf")),
			"leaf": plain("leaf", "x"),
		}
		d, err := CalculateMaxDepth(ctx, "a", g, nil)
		require.NoError(t, err)
		assert.Equal(t, 2, d)
	})

	t.Run("chain at the limit validates", func(t *testing.T) {
		g, root := chainGraph(MaxNestingDepth)
		d, err := CalculateMaxDepth(ctx, root, g, nil)
		require.NoError(t, err)
		assert.Equal(t, MaxNestingDepth, d)
	})

	t.Run("chain one past the limit fails", func(t *testing.T) {
		g, root := chainGraph(MaxNestingDepth + 1)
		_, err := CalculateMaxDepth(ctx, root, g, nil)
		var mde *MaxDepthExceededError
		require.ErrorAs(t, err, &mde)
		assert.Equal(t, MaxNestingDepth, mde.Limit)
		assert.Equal(t, MaxNestingDepth+1, mde.Actual)
	})

	t.Run("missing referenced prompt", func(t *testing.T) {
		g := memFetcher{"a": compound("a", ref(0, "ghost"))}
		_, err := CalculateMaxDepth(ctx, "a", g, nil)
		var ice *InvalidComponentError
		assert.ErrorAs(t, err, &ice)
	})

	t.Run("memo shares work across sibling branches", func(t *testing.T) {
		inner := memFetcher{
			"a":    compound("a", ref(0, "b"), ref(1, "c")),
			"b":    compound("b", ref(0, "d")),
			"c":    compound("c", ref(0, "d")),
			"d":    compound("d", ref(0, "leaf")),
			"leaf": plain("leaf", "x"),
		}
		f := newCountingFetcher(inner)
		d, err := CalculateMaxDepth(ctx, "a", f, nil)
		require.NoError(t, err)
		assert.Equal(t, 3, d)
		assert.Equal(t, 1, f.counts["d"], "shared subtree should be computed once")
		assert.Equal(t, 1, f.counts["leaf"])
	})

	t.Run("caller-supplied cache is honored", func(t *testing.T) {
		g := memFetcher{"a": compound("a", ref(0, "b"))}
		// b is absent from the graph but pre-seeded in the cache, as when a
		// sibling branch within the same run already computed it.
		cache := map[string]int{"b": 2}
		d, err := CalculateMaxDepth(ctx, "a", g, cache)
		require.NoError(t, err)
		assert.Equal(t, 3, d)
		assert.Equal(t, 3, cache["a"])
	})

	t.Run("unvalidated cycle terminates with depth error", func(t *testing.T) {
		g := memFetcher{
			"a": compound("a", ref(0, "b")),
			"b": compound("b", ref(0, "a")),
		}
		_, err := CalculateMaxDepth(ctx, "a", g, nil)
		var mde *MaxDepthExceededError
		assert.ErrorAs(t, err, &mde)
	})
}

func TestValidateComponent(t *testing.T) {
	ctx := context.Background()

	t.Run("self reference rejected immediately", func(t *testing.T) {
		// No fetches should be needed to reject a self edge.
		f := newCountingFetcher(memFetcher{})
		err := ValidateComponent(ctx, "a", "a", f)
		var cre *CircularReferenceError
		require.ErrorAs(t, err, &cre)
		assert.Empty(t, f.counts)
	})

	t.Run("edge closing a loop rejected", func(t *testing.T) {
		// b already references a; attaching a -> b would close the loop.
		g := memFetcher{
			"a": compound("a"),
			"b": compound("b", ref(0, "a")),
		}
		err := ValidateComponent(ctx, "a", "b", g)
		var cre *CircularReferenceError
		require.ErrorAs(t, err, &cre)
		assert.Equal(t, []string{"a", "b", "a"}, cre.Path)
	})

	t.Run("acyclic edge within bound accepted", func(t *testing.T) {
		g := memFetcher{
			"b":    compound("b", ref(0, "leaf")),
			"leaf": plain("leaf", "x"),
		}
		assert.NoError(t, ValidateComponent(ctx, "a", "b", g))
	})

	t.Run("edge pushing depth past the bound rejected", func(t *testing.T) {
		g, deepRoot := chainGraph(MaxNestingDepth)
		err := ValidateComponent(ctx, "new", deepRoot, g)
		var mde *MaxDepthExceededError
		require.ErrorAs(t, err, &mde)
		assert.Equal(t, MaxNestingDepth, mde.Limit)
		assert.Equal(t, MaxNestingDepth+1, mde.Actual)
	})

	t.Run("missing component prompt rejected", func(t *testing.T) {
		err := ValidateComponent(ctx, "a", "ghost", memFetcher{})
		var ice *InvalidComponentError
		assert.ErrorAs(t, err, &ice)
	})
}
