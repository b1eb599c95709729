package genealogy

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "familytree/internal/errors"
)

// buildFamily creates the tree
//
//	    Alice
//	   /     \
//	 Bob    Carol
//	 /
//	Dan
func buildFamily(t *testing.T) *Tree {
	t.Helper()
	tree := NewTree()
	require.NoError(t, tree.AddRoot("Alice"))
	require.NoError(t, tree.AddLeftChild("Alice", "Bob"))
	require.NoError(t, tree.AddRightChild("Alice", "Carol"))
	require.NoError(t, tree.AddLeftChild("Bob", "Dan"))
	return tree
}

func TestTree_Scenario(t *testing.T) {
	tree := buildFamily(t)

	assert.Equal(t, []string{"Alice", "Bob", "Dan", "Carol"}, tree.Descendants("Alice"))
	assert.Equal(t, []string{"Alice", "Bob", "Dan"}, tree.Ancestors("Dan"))
	assert.Equal(t, []string{"Alice", "Carol"}, tree.Ancestors("Carol"))
	assert.Equal(t, []string{"Bob", "Dan"}, tree.Descendants("Bob"))
	assert.Equal(t, 4, tree.Len())
}

func TestTree_EmptyTree(t *testing.T) {
	tree := NewTree()

	assert.Nil(t, tree.Root())
	assert.Empty(t, tree.Descendants("Alice"))
	assert.Empty(t, tree.Ancestors("Alice"))
	assert.Equal(t, 0, tree.Len())
	assert.ErrorIs(t, tree.AddLeftChild("Alice", "Bob"), errs.ErrParentNotFound)
	assert.ErrorIs(t, tree.AddRightChild("Alice", "Bob"), errs.ErrParentNotFound)
	assert.Nil(t, tree.Root())
}

func TestTree_AddRootIsIdempotent(t *testing.T) {
	tree := NewTree()
	require.NoError(t, tree.AddRoot("X"))

	err := tree.AddRoot("Y")

	assert.ErrorIs(t, err, errs.ErrRootExists)
	require.NotNil(t, tree.Root())
	assert.Equal(t, "X", tree.Root().Value())
	assert.Nil(t, tree.Root().Left())
	assert.Nil(t, tree.Root().Right())
	assert.False(t, tree.Contains("Y"))
}

func TestTree_OccupiedSlotIsNotOverwritten(t *testing.T) {
	tree := buildFamily(t)
	bob := tree.Root().Left()

	assert.ErrorIs(t, tree.AddLeftChild("Alice", "Eve"), errs.ErrSlotOccupied)
	assert.ErrorIs(t, tree.AddRightChild("Alice", "Eve"), errs.ErrSlotOccupied)

	assert.Same(t, bob, tree.Root().Left())
	assert.Equal(t, []string{"Alice", "Bob", "Dan", "Carol"}, tree.Descendants("Alice"))
	assert.False(t, tree.Contains("Eve"))
}

func TestTree_UnknownParentIsIgnored(t *testing.T) {
	tree := buildFamily(t)

	assert.ErrorIs(t, tree.AddLeftChild("Zed", "Eve"), errs.ErrParentNotFound)
	assert.ErrorIs(t, tree.AddRightChild("Zed", "Eve"), errs.ErrParentNotFound)
	assert.Equal(t, 4, tree.Len())
}

func TestTree_NotFoundQueriesAreEmpty(t *testing.T) {
	tree := buildFamily(t)

	desc := tree.Descendants("nonexistent")
	anc := tree.Ancestors("nonexistent")

	assert.NotNil(t, desc)
	assert.NotNil(t, anc)
	assert.Empty(t, desc)
	assert.Empty(t, anc)
}

func TestTree_AncestorSearchBacktracksAcrossBranches(t *testing.T) {
	tree := buildFamily(t)
	require.NoError(t, tree.AddRightChild("Bob", "Ed"))
	require.NoError(t, tree.AddLeftChild("Carol", "Fay"))
	require.NoError(t, tree.AddRightChild("Fay", "Gus"))

	assert.Equal(t, []string{"Alice", "Carol", "Fay", "Gus"}, tree.Ancestors("Gus"))
	assert.Equal(t, []string{"Alice", "Bob", "Ed"}, tree.Ancestors("Ed"))
	assert.Equal(t, []string{"Alice"}, tree.Ancestors("Alice"))
}

func TestTree_DuplicateNamesResolveToPreorderFirst(t *testing.T) {
	tree := NewTree()
	require.NoError(t, tree.AddRoot("Ann"))
	require.NoError(t, tree.AddLeftChild("Ann", "Sam"))
	require.NoError(t, tree.AddRightChild("Ann", "Kim"))
	require.NoError(t, tree.AddLeftChild("Kim", "Sam"))

	// the second Sam is never reachable by name
	require.NoError(t, tree.AddLeftChild("Sam", "Tom"))

	assert.Equal(t, []string{"Ann", "Sam"}, tree.Ancestors("Sam"))
	assert.Equal(t, []string{"Sam", "Tom"}, tree.Descendants("Sam"))
	assert.Equal(t, "Tom", tree.Root().Left().Left().Value())
	assert.Nil(t, tree.Root().Right().Left().Left())
}

func TestTree_AncestorDescendantDuality(t *testing.T) {
	tree := buildFamily(t)
	require.NoError(t, tree.AddRightChild("Carol", "Hal"))

	var names []string
	tree.Walk(func(n *Node, _ int) bool {
		names = append(names, n.Value())
		return true
	})

	for _, b := range names {
		ancestors := tree.Ancestors(b)
		require.NotEmpty(t, ancestors)
		assert.Equal(t, "Alice", ancestors[0])
		assert.Equal(t, b, ancestors[len(ancestors)-1])

		for _, a := range ancestors {
			assert.Contains(t, tree.Descendants(a), b)
		}
		assert.Equal(t, b, tree.Descendants(b)[0])
	}
}

func TestTree_WalkReportsDepthAndStops(t *testing.T) {
	tree := buildFamily(t)

	depths := map[string]int{}
	tree.Walk(func(n *Node, depth int) bool {
		depths[n.Value()] = depth
		return true
	})
	assert.Equal(t, map[string]int{"Alice": 0, "Bob": 1, "Dan": 2, "Carol": 1}, depths)

	var visited []string
	tree.Walk(func(n *Node, _ int) bool {
		visited = append(visited, n.Value())
		return n.Value() != "Bob"
	})
	assert.Equal(t, []string{"Alice", "Bob"}, visited)
}

func TestTree_AncestorsOfDeepChain(t *testing.T) {
	tree := NewTree()
	require.NoError(t, tree.AddRoot("p0"))

	const depth = 2000
	want := []string{"p0"}
	for i := 1; i < depth; i++ {
		child := fmt.Sprintf("p%d", i)
		require.NoError(t, tree.AddLeftChild(want[i-1], child))
		want = append(want, child)
	}

	assert.Equal(t, want, tree.Ancestors(fmt.Sprintf("p%d", depth-1)))
	assert.Equal(t, want[:3], tree.Ancestors("p2"))
}
