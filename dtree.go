/*
Package dtree grows classification trees from categorical data. Every node
is split on the attribute with the highest information gain ratio over the
samples that reach it, until no attribute gives any gain.

Growing a tree is driven by a queue of tasks, one per node to develop: Seed
creates the root node on a node store and pushes its task, and Work pulls
tasks, develops their nodes with BranchOut and pushes the tasks for the
children. Grow wires all of it in memory.
*/
package dtree

import (
	"context"
	"time"

	"github.com/flapek/decision-trees-ID3-C4.5/dataset"
	"github.com/flapek/decision-trees-ID3-C4.5/feature"
	"github.com/flapek/decision-trees-ID3-C4.5/queue"
	"github.com/flapek/decision-trees-ID3-C4.5/tree"
	"github.com/pkg/errors"
)

// Error represents an error growing a tree
type Error string

// ErrEmptyDataset is returned when a tree is grown from a dataset without samples.
const ErrEmptyDataset = Error("cannot grow a tree from an empty dataset")

func (e Error) Error() string {
	return string(e)
}

const emptyQueueSleep = 10 * time.Millisecond

// Seed takes a context, a label feature, a slice of attribute
// features, a dataset, a queue and a node store and sets everything
// up so that workers that consume from the queue afterwards
// grow a tree that predicts the given label feature using
// the features in the given slice and according to the training
// data on the given dataset.
// Specifically it will create the root node of the tree on the
// node store and push a task to branch it out on the queue.
// The function returns the tree that can be grown or an error
// if the node cannot be created on the store, or the task pushed
// to the queue.
func Seed(ctx context.Context, label feature.Feature, features []feature.Feature, s dataset.Dataset, q queue.Queue, ns tree.NodeStore) (*tree.Tree, error) {
	n := &tree.Node{}
	if err := ns.Create(ctx, n); err != nil {
		return nil, errors.Wrap(err, "creating root node")
	}
	t := tree.New(n.ID, ns, label)
	if err := q.Push(ctx, &queue.Task{Node: n, Dataset: s, AvailableFeatures: features}); err != nil {
		ns.Delete(ctx, n)
		return nil, errors.Wrap(err, "pushing root task")
	}
	return t, nil
}

/*
BranchOut takes a context, a task, a tree and a strategy, develops the node
in the task using the task's dataset and available features to predict the
tree's label feature and returns the tasks to develop the resulting children
or an error.

Every available feature is evaluated in order and the first one with the
highest gain ratio is selected. If that ratio is not positive the node
becomes a leaf labeled by the strategy's Labeler. Otherwise the node is split
on the feature, with a child per value of the feature on the dataset, in the
order values are first found. Children are evaluated on all the available
features again: a feature already used on the path has a single value on
their datasets and so a gain ratio of 0.
*/
func BranchOut(ctx context.Context, task *queue.Task, t *tree.Tree, s *Strategy) (tasks []*queue.Task, e error) {
	count, err := task.Dataset.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrEmptyDataset
	}
	defer func() {
		err := t.NodeStore.Store(ctx, task.Node)
		if e == nil {
			e = err
		}
	}()
	infoT, err := task.Dataset.Entropy(ctx, t.Label)
	if err != nil {
		return nil, err
	}
	var selected *Partition
	for _, f := range task.AvailableFeatures {
		p, err := NewPartition(ctx, task.Dataset, f, t.Label, infoT)
		if err != nil {
			return nil, errors.Wrapf(err, "evaluating feature %s", f.Name())
		}
		if selected == nil || p.GainRatio > selected.GainRatio {
			selected = p
		}
	}
	if selected == nil || selected.GainRatio <= 0 {
		decision, err := s.Label(ctx, task.Dataset, t.Label)
		if err != nil {
			return nil, errors.Wrap(err, "labeling leaf")
		}
		task.Node.Decision = &decision
		return nil, nil
	}
	task.Node.SubtreeFeature = selected.Feature
	tasks, err = selected.Tasks(ctx)
	if err != nil {
		return nil, err
	}
	task.Node.SubtreeIDs = make([]string, 0, len(tasks))
	for _, st := range tasks {
		st.Node.ParentID = task.Node.ID
		if err = t.NodeStore.Create(ctx, st.Node); err != nil {
			return nil, err
		}
		task.Node.SubtreeIDs = append(task.Node.SubtreeIDs, st.Node.ID)
		st.AvailableFeatures = task.AvailableFeatures
	}
	return tasks, nil
}

// Work takes a context, a tree, a queue and a strategy
// and enters a loop in which it:
//   - pulls a task for the queue,
//   - branches its node out into new subnodes using BranchOut
//   - pushes the tasks for the new subnodes into the queue
//   - marks the task as completed on the queue
//
// If at some point no task can be pulled from the queue and
// the sum of tasks running and pending on the queue is 0, the
// worker ends returning nil. If no task can be pulled but the
// sum is not 0, the worker waits and retries.
//
// Work will return a non-nil error if the given context
// times out or is cancelled, if BranchOut returns a non-nil
// error or if an operation with the given queue returns a
// non-nil error.
func Work(ctx context.Context, t *tree.Tree, q queue.Queue, s *Strategy) error {
	for {
		task, tctx, err := q.Pull(ctx)
		if err != nil {
			return err
		}
		if task == nil {
			p, r, err := q.Count(ctx)
			if err != nil {
				return err
			}
			if p+r == 0 {
				return nil
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(emptyQueueSleep):
			}
			continue
		}
		mctx, cancel := mergeCtxCancel(tctx, ctx)
		err = workTask(mctx, task, t, q, s)
		cancel()
		if err != nil {
			return err
		}
		if err = ctx.Err(); err != nil {
			return err
		}
	}
}

func workTask(ctx context.Context, task *queue.Task, t *tree.Tree, q queue.Queue, s *Strategy) error {
	tasks, err := BranchOut(ctx, task, t, s)
	if err != nil {
		q.Drop(context.Background(), task.ID())
		return errors.Wrapf(err, "developing node %s", task.ID())
	}
	for _, st := range tasks {
		if err = q.Push(ctx, st); err != nil {
			q.Drop(context.Background(), task.ID())
			return err
		}
	}
	return q.Complete(ctx, task.ID())
}

func mergeCtxCancel(ctx1, ctx2 context.Context) (context.Context, context.CancelFunc) {
	mctx, cancel := context.WithCancel(ctx1)
	go func() {
		select {
		case <-mctx.Done():
		case <-ctx2.Done():
			cancel()
		}
	}()
	return mctx, cancel
}

/*
BuildTree takes a context, a tree whose root node has not been developed, the
dataset of training samples, the attribute features and a strategy, and
develops the whole tree in place.
*/
func BuildTree(ctx context.Context, t *tree.Tree, s dataset.Dataset, features []feature.Feature, st *Strategy) error {
	root, err := t.Get(ctx, t.RootID)
	if err != nil {
		return errors.Wrap(err, "retrieving root node")
	}
	if root == nil {
		return errors.Errorf("root node %s not found", t.RootID)
	}
	q := queue.New()
	defer q.Stop(ctx)
	if err = q.Push(ctx, &queue.Task{Node: root, Dataset: s, AvailableFeatures: features}); err != nil {
		return err
	}
	return Work(ctx, t, q, st)
}

/*
Grow takes a context, a dataset of training samples, the attribute features,
the label feature and a strategy and returns the tree grown from them on an
in-memory node store, or an error.
*/
func Grow(ctx context.Context, s dataset.Dataset, features []feature.Feature, label feature.Feature, st *Strategy) (*tree.Tree, error) {
	if st == nil {
		st = DefaultStrategy()
	}
	q := queue.New()
	defer q.Stop(ctx)
	t, err := Seed(ctx, label, features, s, q, tree.NewMemoryNodeStore())
	if err != nil {
		return nil, err
	}
	if err = Work(ctx, t, q, st); err != nil {
		return nil, err
	}
	return t, nil
}
