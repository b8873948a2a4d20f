package tree

import (
	"context"
	"fmt"
	"strings"

	"github.com/flapek/decision-trees-ID3-C4.5/feature"
	"github.com/pkg/errors"
)

// Tree represents a classification tree. It is composed of a
// NodeStore where all its nodes are stored, the id for the
// root node of the tree and the label it is able to
// predict.
type Tree struct {
	NodeStore
	RootID string
	Label  feature.Feature
}

// New takes the ID for the root Node, a NodeStore and a label feature and
// returns a tree composed of the nodes in the NodeStore connected to the
// node with the given root ID that predicts the given feature.
func New(rootID string, nodeStore NodeStore, label feature.Feature) *Tree {
	return &Tree{nodeStore, rootID, label}
}

/*
Predict takes a sample and returns the decision the tree makes for it.

Starting at the root, while the current node is split on a feature, the
child whose edge value equals the sample's value for that feature becomes
the current node. If no child matches ErrCannotPredictFromSample is
returned. The decision of the leaf reached is returned otherwise.
*/
func (t *Tree) Predict(ctx context.Context, s feature.Sample) (string, error) {
	if t == nil {
		return "", errors.New("nil tree cannot predict samples")
	}
	n, err := t.node(ctx, t.RootID)
	if err != nil {
		return "", errors.Wrap(err, "predicting sample")
	}
	for n.SubtreeFeature != nil {
		var selected *Node
		for _, id := range n.SubtreeIDs {
			child, err := t.node(ctx, id)
			if err != nil {
				return "", errors.Wrap(err, "predicting sample")
			}
			if child.FeatureCriterion == nil {
				continue
			}
			ok, err := child.FeatureCriterion.SatisfiedBy(ctx, s)
			if err != nil {
				return "", errors.Wrap(err, "predicting sample")
			}
			if ok {
				selected = child
				break
			}
		}
		if selected == nil {
			return "", ErrCannotPredictFromSample
		}
		n = selected
	}
	if n.Decision == nil {
		return "", ErrIncompleteTree
	}
	return *n.Decision, nil
}

func (t *Tree) node(ctx context.Context, id string) (*Node, error) {
	n, err := t.Get(ctx, id)
	if err != nil {
		return nil, errors.Wrapf(err, "retrieving node %v", id)
	}
	if n == nil {
		return nil, errors.Errorf("node %v not found", id)
	}
	return n, nil
}

// Traverse takes a context, bottomup boolean and an
// error-returning function that takes a context and a node
// as parameters, and goes through the tree running the
// function with the context and every traversed node.
// Traverse will call the function with a parent node before
// calling it for its children if bottomup is false, and
// call it after its children if bottomup is true.
// If the given context times out or is cancelled, the context
// error is returned. If a node cannot be retrieved from the
// tree's node store, the obtained error is returned. If the
// call to the function returns an error, the traversing is
// aborted and the error is returned.
func (t *Tree) Traverse(ctx context.Context, bottomup bool, f func(context.Context, *Node) error) error {
	n, err := t.node(ctx, t.RootID)
	if err != nil {
		return err
	}
	return t.traverse(ctx, n, bottomup, f)
}

func (t *Tree) traverse(ctx context.Context, n *Node, bottomup bool, f func(context.Context, *Node) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !bottomup {
		if err := f(ctx, n); err != nil {
			return err
		}
	}
	for _, id := range n.SubtreeIDs {
		sn, err := t.node(ctx, id)
		if err != nil {
			return err
		}
		if err = t.traverse(ctx, sn, bottomup, f); err != nil {
			return err
		}
	}
	if bottomup {
		return f(ctx, n)
	}
	return nil
}

/*
Leaves returns the number of leaves and the depth of the tree, the number
of edges on its longest root to leaf path.
*/
func (t *Tree) Leaves(ctx context.Context) (leaves int, depth int, err error) {
	depths := map[string]int{}
	err = t.Traverse(ctx, false, func(ctx context.Context, n *Node) error {
		d := 0
		if n.ParentID != "" {
			d = depths[n.ParentID] + 1
		}
		depths[n.ID] = d
		if d > depth {
			depth = d
		}
		if len(n.SubtreeIDs) == 0 {
			leaves++
		}
		return nil
	})
	return
}

/*
Display returns a rendering of the tree: internal nodes as
"Attribute: name" followed by one line per child, indented one tab per
level, with the edge value and an arrow before the child; leaves as
"Decision: value".
*/
func (t *Tree) Display(ctx context.Context) (string, error) {
	b := &strings.Builder{}
	if err := t.display(ctx, b, t.RootID, 0); err != nil {
		return "", err
	}
	b.WriteString("\n")
	return b.String(), nil
}

func (t *Tree) display(ctx context.Context, b *strings.Builder, id string, depth int) error {
	n, err := t.node(ctx, id)
	if err != nil {
		return err
	}
	if n.SubtreeFeature == nil {
		decision := "?"
		if n.Decision != nil {
			decision = *n.Decision
		}
		fmt.Fprintf(b, "Decision: %s", decision)
		return nil
	}
	fmt.Fprintf(b, "Attribute: %s", n.SubtreeFeature.Name())
	for _, cid := range n.SubtreeIDs {
		child, err := t.node(ctx, cid)
		if err != nil {
			return err
		}
		fmt.Fprintf(b, "\n%s%s -> ", strings.Repeat("\t", depth+1), child.EdgeValue())
		if err = t.display(ctx, b, cid, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tree) String() string {
	s, err := t.Display(context.TODO())
	if err != nil {
		return fmt.Sprintf("ERROR: %s\n", err.Error())
	}
	return s
}
