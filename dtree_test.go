package dtree

import (
	"context"
	"math/rand"
	"testing"

	"github.com/flapek/decision-trees-ID3-C4.5/dataset"
	"github.com/flapek/decision-trees-ID3-C4.5/feature"
	"github.com/flapek/decision-trees-ID3-C4.5/queue"
	"github.com/flapek/decision-trees-ID3-C4.5/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var weather = []dataset.Row{
	{"sunny", "hot", "yes"},
	{"sunny", "cool", "no"},
	{"rainy", "hot", "no"},
	{"rainy", "cool", "no"},
}

func columns(rows []dataset.Row) ([]feature.Feature, feature.Feature) {
	fs := feature.Columns(len(rows[0]))
	return fs[:len(fs)-1], fs[len(fs)-1]
}

func TestGrowWeather(t *testing.T) {
	ctx := context.Background()
	features, label := columns(weather)
	tr, err := Grow(ctx, dataset.FromRows(weather), features, label, nil)
	require.NoError(t, err)

	expected := "Attribute: 0\n" +
		"\tsunny -> Attribute: 1\n" +
		"\t\thot -> Decision: yes\n" +
		"\t\tcool -> Decision: no\n" +
		"\trainy -> Decision: no\n"
	assert.Equal(t, expected, tr.String())

	for _, r := range weather {
		p, err := tr.Predict(ctx, r)
		require.NoError(t, err)
		assert.Equal(t, r.Decision(), p)
	}
	_, err = tr.Predict(ctx, dataset.Row{"foggy", "hot", "yes"})
	assert.Equal(t, tree.ErrCannotPredictFromSample, err)
}

func TestGrowSingleLabel(t *testing.T) {
	ctx := context.Background()
	rows := []dataset.Row{{"a", "x", "no"}, {"b", "y", "no"}, {"c", "x", "no"}}
	features, label := columns(rows)
	tr, err := Grow(ctx, dataset.FromRows(rows), features, label, DefaultStrategy())
	require.NoError(t, err)
	assert.Equal(t, "Decision: no\n", tr.String())
}

func TestGrowEmptyDataset(t *testing.T) {
	features, label := columns(weather)
	_, err := Grow(context.Background(), dataset.FromRows(nil), features, label, nil)
	assert.Error(t, err)
}

func TestGrowCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	features, label := columns(weather)
	_, err := Grow(ctx, dataset.FromRows(weather), features, label, nil)
	assert.Error(t, err)
}

func TestLeafPolicies(t *testing.T) {
	ctx := context.Background()
	// Identical attributes with conflicting decisions cannot be split.
	rows := []dataset.Row{{"a", "no"}, {"a", "yes"}, {"a", "yes"}}
	features, label := columns(rows)
	s := dataset.FromRows(rows)

	tr, err := Grow(ctx, s, features, label, &Strategy{FirstSeenLabeler()})
	require.NoError(t, err)
	assert.Equal(t, "Decision: no\n", tr.String())

	tr, err = Grow(ctx, s, features, label, &Strategy{MajorityLabeler()})
	require.NoError(t, err)
	assert.Equal(t, "Decision: yes\n", tr.String())

	tie := dataset.FromRows([]dataset.Row{{"a", "yes"}, {"a", "no"}})
	decision, err := MajorityLabeler().Label(ctx, tie, label)
	require.NoError(t, err)
	assert.Equal(t, "yes", decision)

	_, err = FirstSeenLabeler().Label(ctx, dataset.FromRows(nil), label)
	assert.Equal(t, ErrEmptyDataset, err)
	_, err = MajorityLabeler().Label(ctx, dataset.FromRows(nil), label)
	assert.Equal(t, ErrEmptyDataset, err)
}

func TestBuildTree(t *testing.T) {
	ctx := context.Background()
	features, label := columns(weather)
	ns := tree.NewMemoryNodeStore()
	root := &tree.Node{}
	require.NoError(t, ns.Create(ctx, root))
	tr := tree.New(root.ID, ns, label)
	require.NoError(t, BuildTree(ctx, tr, dataset.FromRows(weather), features, DefaultStrategy()))
	grown, err := Grow(ctx, dataset.FromRows(weather), features, label, nil)
	require.NoError(t, err)
	assert.Equal(t, grown.String(), tr.String())

	missing := tree.New("none", ns, label)
	assert.Error(t, BuildTree(ctx, missing, dataset.FromRows(weather), features, DefaultStrategy()))
}

func TestSeedAndBranchOut(t *testing.T) {
	ctx := context.Background()
	features, label := columns(weather)
	q := queue.New()
	ns := tree.NewMemoryNodeStore()
	tr, err := Seed(ctx, label, features, dataset.FromRows(weather), q, ns)
	require.NoError(t, err)
	task, _, err := q.Pull(ctx)
	require.NoError(t, err)
	require.NotNil(t, task)
	assert.Equal(t, tr.RootID, task.ID())

	tasks, err := BranchOut(ctx, task, tr, DefaultStrategy())
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	root, err := ns.Get(ctx, tr.RootID)
	require.NoError(t, err)
	assert.Equal(t, features[0], root.SubtreeFeature)
	assert.Nil(t, root.Decision)
	assert.Equal(t, []string{tasks[0].ID(), tasks[1].ID()}, root.SubtreeIDs)
	assert.Equal(t, "sunny", tasks[0].Node.EdgeValue())
	assert.Equal(t, "rainy", tasks[1].Node.EdgeValue())
	for _, st := range tasks {
		assert.Equal(t, tr.RootID, st.Node.ParentID)
		assert.Equal(t, features, st.AvailableFeatures)
		n, err := st.Dataset.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	}

	leaves, err := BranchOut(ctx, tasks[1], tr, DefaultStrategy())
	require.NoError(t, err)
	assert.Empty(t, leaves)
	rainy, err := ns.Get(ctx, tasks[1].ID())
	require.NoError(t, err)
	require.NotNil(t, rainy.Decision)
	assert.Equal(t, "no", *rainy.Decision)
	assert.Nil(t, rainy.SubtreeFeature)
}

// randomRows returns n rows of the given number of attributes with values
// taken from a small alphabet and a decision depending on some of them.
func randomRows(rng *rand.Rand, n, attributes int) []dataset.Row {
	values := []string{"a", "b", "c"}
	rows := make([]dataset.Row, 0, n)
	for i := 0; i < n; i++ {
		r := make(dataset.Row, 0, attributes+1)
		for j := 0; j < attributes; j++ {
			r = append(r, values[rng.Intn(len(values))])
		}
		decision := "no"
		if r[0] == "a" || (r[1] == "b" && rng.Intn(4) > 0) {
			decision = "yes"
		}
		rows = append(rows, append(r, decision))
	}
	return rows
}

func TestGrowProperties(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		rows := randomRows(rng, 60, 4)
		features, label := columns(rows)
		s := dataset.FromRows(rows)
		tr, err := Grow(ctx, s, features, label, nil)
		require.NoError(t, err)

		// Every leaf decision is a label of the samples that reach the leaf.
		err = tr.Traverse(ctx, false, func(ctx context.Context, n *tree.Node) error {
			if len(n.SubtreeIDs) > 0 {
				assert.Nil(t, n.Decision)
				assert.NotNil(t, n.SubtreeFeature)
				return nil
			}
			require.NotNil(t, n.Decision)
			var err error
			reached := s
			for p := n; p.FeatureCriterion != nil; {
				reached, err = reached.SubsetWith(ctx, p.FeatureCriterion)
				require.NoError(t, err)
				p, err = tr.Get(ctx, p.ParentID)
				require.NoError(t, err)
			}
			labels, err := reached.FeatureValues(ctx, label)
			require.NoError(t, err)
			assert.NotEmpty(t, labels)
			assert.Contains(t, labels, *n.Decision)
			return nil
		})
		require.NoError(t, err)

		// Every training sample reaches a leaf.
		for _, r := range rows {
			_, err := tr.Predict(ctx, r)
			assert.NoError(t, err)
		}
	}
}

func TestGrowIndexedDataset(t *testing.T) {
	ctx := context.Background()
	rows := randomRows(rand.New(rand.NewSource(11)), 1500, 5)
	features, label := columns(rows)
	samples := make([]dataset.Sample, 0, len(rows))
	for _, r := range rows {
		samples = append(samples, r)
	}

	memory, err := Grow(ctx, dataset.NewMemoryIntensive(samples), features, label, nil)
	require.NoError(t, err)
	for _, s := range []dataset.Dataset{dataset.NewIndexed(samples), dataset.FromRows(rows)} {
		indexed, err := Grow(ctx, s, features, label, nil)
		require.NoError(t, err)
		assert.Equal(t, memory.String(), indexed.String())
		for _, r := range rows {
			expected, err := memory.Predict(ctx, r)
			require.NoError(t, err)
			got, err := indexed.Predict(ctx, r)
			require.NoError(t, err)
			assert.Equal(t, expected, got)
		}
	}
}
