package tree

import (
	"context"
	"testing"

	"github.com/flapek/decision-trees-ID3-C4.5/dataset"
	"github.com/flapek/decision-trees-ID3-C4.5/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var columns = feature.Columns(3)

func decision(s string) *string {
	return &s
}

// weatherTree builds the tree
//
//	Attribute: 0
//		sunny -> Attribute: 1
//			hot -> Decision: yes
//			cool -> Decision: no
//		rainy -> Decision: no
func weatherTree(t *testing.T) *Tree {
	ctx := context.Background()
	ns := NewMemoryNodeStore()
	root := &Node{SubtreeFeature: columns[0]}
	require.NoError(t, ns.Create(ctx, root))
	sunny := &Node{ParentID: root.ID, FeatureCriterion: feature.NewDiscreteCriterion(columns[0], "sunny"), SubtreeFeature: columns[1]}
	require.NoError(t, ns.Create(ctx, sunny))
	rainy := &Node{ParentID: root.ID, FeatureCriterion: feature.NewDiscreteCriterion(columns[0], "rainy"), Decision: decision("no")}
	require.NoError(t, ns.Create(ctx, rainy))
	hot := &Node{ParentID: sunny.ID, FeatureCriterion: feature.NewDiscreteCriterion(columns[1], "hot"), Decision: decision("yes")}
	require.NoError(t, ns.Create(ctx, hot))
	cool := &Node{ParentID: sunny.ID, FeatureCriterion: feature.NewDiscreteCriterion(columns[1], "cool"), Decision: decision("no")}
	require.NoError(t, ns.Create(ctx, cool))
	root.SubtreeIDs = []string{sunny.ID, rainy.ID}
	sunny.SubtreeIDs = []string{hot.ID, cool.ID}
	require.NoError(t, ns.Store(ctx, root))
	require.NoError(t, ns.Store(ctx, sunny))
	return New(root.ID, ns, columns[2])
}

func TestPredict(t *testing.T) {
	ctx := context.Background()
	tr := weatherTree(t)
	testCases := []struct {
		row      dataset.Row
		expected string
	}{
		{dataset.Row{"sunny", "hot", "yes"}, "yes"},
		{dataset.Row{"sunny", "cool", "no"}, "no"},
		{dataset.Row{"rainy", "hot", "no"}, "no"},
		{dataset.Row{"rainy", "mild", "yes"}, "no"},
	}
	for _, tc := range testCases {
		p, err := tr.Predict(ctx, tc.row)
		require.NoError(t, err, "predicting %v", tc.row)
		assert.Equal(t, tc.expected, p, "predicting %v", tc.row)
	}
}

func TestPredictUnclassified(t *testing.T) {
	ctx := context.Background()
	tr := weatherTree(t)
	for _, r := range []dataset.Row{{"overcast", "hot", "yes"}, {"sunny", "mild", "no"}} {
		_, err := tr.Predict(ctx, r)
		assert.Equal(t, ErrCannotPredictFromSample, err, "predicting %v", r)
	}
	_, err := tr.Predict(ctx, dataset.Row{"sunny"})
	assert.Error(t, err)
	assert.NotEqual(t, ErrCannotPredictFromSample, err)

	var nilTree *Tree
	_, err = nilTree.Predict(ctx, dataset.Row{"sunny", "hot", "yes"})
	assert.Error(t, err)
}

func TestPredictUndevelopedNode(t *testing.T) {
	ctx := context.Background()
	ns := NewMemoryNodeStore()
	root := &Node{}
	require.NoError(t, ns.Create(ctx, root))
	_, err := New(root.ID, ns, columns[2]).Predict(ctx, dataset.Row{"a", "b", "c"})
	assert.Equal(t, ErrIncompleteTree, err)
}

func TestTraverse(t *testing.T) {
	ctx := context.Background()
	tr := weatherTree(t)
	var topdown, bottomup []string
	require.NoError(t, tr.Traverse(ctx, false, func(_ context.Context, n *Node) error {
		topdown = append(topdown, n.EdgeValue())
		return nil
	}))
	require.NoError(t, tr.Traverse(ctx, true, func(_ context.Context, n *Node) error {
		bottomup = append(bottomup, n.EdgeValue())
		return nil
	}))
	assert.Equal(t, []string{"", "sunny", "hot", "cool", "rainy"}, topdown)
	assert.Equal(t, []string{"hot", "cool", "sunny", "rainy", ""}, bottomup)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	assert.Error(t, tr.Traverse(cancelled, false, func(context.Context, *Node) error { return nil }))
}

func TestLeaves(t *testing.T) {
	leaves, depth, err := weatherTree(t).Leaves(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, leaves)
	assert.Equal(t, 2, depth)
}

func TestDisplay(t *testing.T) {
	expected := "Attribute: 0\n" +
		"\tsunny -> Attribute: 1\n" +
		"\t\thot -> Decision: yes\n" +
		"\t\tcool -> Decision: no\n" +
		"\trainy -> Decision: no\n"
	assert.Equal(t, expected, weatherTree(t).String())
}

func TestMemoryNodeStore(t *testing.T) {
	ctx := context.Background()
	ns := NewMemoryNodeStore()
	a, b := &Node{}, &Node{}
	require.NoError(t, ns.Create(ctx, a))
	require.NoError(t, ns.Create(ctx, b))
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)

	got, err := ns.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Same(t, a, got)

	require.NoError(t, ns.Delete(ctx, a))
	got, err = ns.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = ns.Get(cancelled, b.ID)
	assert.Equal(t, context.Canceled, err)
	require.NoError(t, ns.Close(ctx))
}
