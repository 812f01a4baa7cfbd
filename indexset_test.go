package indexset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	indexset "github.com/chaisql/indexset"
	"github.com/chaisql/indexset/internal/containers"
	"github.com/chaisql/indexset/internal/expr"
	"github.com/chaisql/indexset/internal/index"
)

type X struct {
	A int
}

// Scenario 1: hash lookup optimizes `a = 2` to a bare IndexLookup and
// returns the single matching object.
func TestScenario1HashLookup(t *testing.T) {
	s, err := indexset.New(
		[]X{{A: 1}, {A: 2}, {A: 3}},
		indexset.WithIndex[X](index.NewHashIndex[X]("A")),
	)
	require.NoError(t, err)

	p, err := s.Plan("A = 2")
	require.NoError(t, err)
	assert.Equal(t, "ScanFilter: A = 2", p.String())

	optimized := s.Optimize(p)
	assert.Equal(t, "IndexLookup: HashIndex(A) = 2", optimized.String())

	got, err := s.Execute(optimized)
	require.NoError(t, err)
	assert.Equal(t, map[X]struct{}{{A: 2}: {}}, got)
}

// Scenario 2: without an index, an Intersect of two scans merges into one
// ScanFilter over the conjunction.
func TestScenario2FilterMergeWithoutIndex(t *testing.T) {
	s, err := indexset.New([]X{{A: 1}, {A: 2}, {A: 3}})
	require.NoError(t, err)

	p, err := s.Plan("A = 2 AND A > 0")
	require.NoError(t, err)

	optimized := s.Optimize(p)
	assert.Equal(t, "ScanFilter: A = 2 AND A > 0", optimized.String())

	got, err := s.Execute(optimized)
	require.NoError(t, err)
	assert.Equal(t, map[X]struct{}{{A: 2}: {}}, got)
}

// Scenario 3: a SortedDictIndex serves `A > 1 AND A <= 4` as a single
// IndexRange.
func TestScenario3RangeIntersection(t *testing.T) {
	s, err := indexset.New(
		[]X{{A: 1}, {A: 2}, {A: 3}, {A: 4}, {A: 5}},
		indexset.WithIndex[X](index.NewSortedDictIndex[X]("A")),
	)
	require.NoError(t, err)

	got, err := s.Filter("A > 1 AND A <= 4")
	require.NoError(t, err)
	assert.Equal(t, map[X]struct{}{{A: 2}: {}, {A: 3}: {}, {A: 4}: {}}, got)
}

// Scenario 4: a contradictory range folds to Empty.
func TestScenario4EmptyRangeFold(t *testing.T) {
	s, err := indexset.New(
		[]X{{A: 1}, {A: 2}, {A: 3}},
		indexset.WithIndex[X](index.NewSortedDictIndex[X]("A")),
	)
	require.NoError(t, err)

	p, err := s.Plan("A > 3 AND A < 2")
	require.NoError(t, err)
	optimized := s.Optimize(p)
	assert.Equal(t, "Empty", optimized.String())

	got, err := s.Execute(optimized)
	require.NoError(t, err)
	assert.Empty(t, got)
}

// Scenario 5: IN over a HashIndex expands to a Union of IndexLookups.
func TestScenario5InExpandsToUnionOfLookups(t *testing.T) {
	s, err := indexset.New(
		[]X{{A: 1}, {A: 2}, {A: 3}},
		indexset.WithIndex[X](index.NewHashIndex[X]("A")),
	)
	require.NoError(t, err)

	got, err := s.Filter("A IN (1, 3)")
	require.NoError(t, err)
	assert.Equal(t, map[X]struct{}{{A: 1}: {}, {A: 3}: {}}, got)
}

// Scenario 6: the fluent builder and the condition-string surface agree.
func TestScenario6FluentEquivalentToStringForm(t *testing.T) {
	s, err := indexset.New([]X{{A: 1}, {A: 2}, {A: 3}})
	require.NoError(t, err)

	cond := expr.Attr("A").Eq(3).Not()
	assert.Equal(t, "NOT A = 3", cond.String())

	got, err := s.Filter(cond)
	require.NoError(t, err)
	assert.Equal(t, map[X]struct{}{{A: 1}: {}, {A: 2}: {}}, got)

	viaString, err := s.Filter("NOT A = 3")
	require.NoError(t, err)
	assert.Equal(t, got, viaString)
}

func TestAddDiscardUpdateIndexCoherence(t *testing.T) {
	s, err := indexset.New(
		[]X{{A: 1}},
		indexset.WithIndex[X](index.NewHashIndex[X]("A")),
	)
	require.NoError(t, err)

	require.NoError(t, s.Add(X{A: 2}))
	assert.True(t, s.Contains(X{A: 2}))

	got, err := s.Filter("A = 2")
	require.NoError(t, err)
	assert.Equal(t, map[X]struct{}{{A: 2}: {}}, got)

	require.NoError(t, s.Discard(X{A: 2}))
	assert.False(t, s.Contains(X{A: 2}))

	got, err = s.Filter("A = 2")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDifferenceUpdateRemovesMultiple(t *testing.T) {
	s, err := indexset.New([]X{{A: 1}, {A: 2}, {A: 3}})
	require.NoError(t, err)

	require.NoError(t, s.DifferenceUpdate(map[X]struct{}{{A: 1}: {}, {A: 2}: {}}))
	assert.Equal(t, 1, s.Len())
	assert.True(t, s.Contains(X{A: 3}))
}

// Unhashable-by-value members (here, a struct containing a slice) are
// stored through the Container escape hatch, which gives every wrapped
// object a distinct identity regardless of its contents.
func TestContainerIdentityWrapping(t *testing.T) {
	type payload struct {
		Tags []string
	}

	a := containers.New(payload{Tags: []string{"x"}})
	b := containers.New(payload{Tags: []string{"x"}})

	s, err := indexset.New([]*containers.Container[payload]{a, b})
	require.NoError(t, err)

	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Contains(a))
	assert.True(t, s.Contains(b))
}

func TestUnsupportedFilterInput(t *testing.T) {
	s, err := indexset.New([]X{{A: 1}})
	require.NoError(t, err)

	_, err = s.Filter(42)
	assert.ErrorIs(t, err, indexset.ErrUnsupportedFilterInput)
}
