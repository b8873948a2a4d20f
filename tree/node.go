package tree

import (
	"github.com/flapek/decision-trees-ID3-C4.5/feature"
)

/*
Node is a node of the tree
*/
type Node struct {
	// An ID to identify the node
	ID string
	// The ID for the parent of the node in the tree
	ParentID string
	// A slice with the IDs of the nodes directly under this node,
	// in the order they were created
	SubtreeIDs []string
	// The decision for samples that reach this node. It is only
	// set on leaves.
	Decision *string
	// The constraint on the parent's split feature that samples must
	// satisfy to reach this node from its parent: the value on the edge.
	// It is nil for the root.
	FeatureCriterion feature.Criterion
	// The feature on which nodes directly under this node impose a
	// constraint: the split attribute. It is nil for leaves.
	SubtreeFeature feature.Feature
}

// IsLeaf returns whether the node holds a decision.
func (n *Node) IsLeaf() bool {
	return n.Decision != nil
}

// EdgeValue returns the value on the edge that leads to the node, or
// "" if the node is the root.
func (n *Node) EdgeValue() string {
	if dc, ok := n.FeatureCriterion.(feature.DiscreteCriterion); ok {
		return dc.Value()
	}
	return ""
}
