package queue

import (
	"context"
	"fmt"
	"sync"

	"github.com/emirpasic/gods/queues/arrayqueue"
)

// Queue represents a queue where tasks to develop
// tree nodes can be pushed and pulled. A worker
// uses the Pull method to obtain a task, processes
// it and then either completes it or drops it.
//
// All its methods have a context.Context as first
// parameter that implementations may use to allow
// timeouts and cancellations on the Queue operations.
type Queue interface {
	// Push takes a task and stores it in the queue or
	// returns an error. The task will count as pending.
	Push(context.Context, *Task) error
	// Pull returns the oldest pending task and a context
	// that is cancelled when the queue is stopped, or
	// an error. The pulled task counts as running from
	// then on. If there are no tasks to pull it returns
	// three nil values.
	Pull(context.Context) (*Task, context.Context, error)
	// Drop takes the ID for a running task and makes it
	// pending again.
	Drop(context.Context, string) error
	// Complete takes the ID for a running task and
	// removes it from the queue.
	Complete(context.Context, string) error
	// Count returns the number of pending and running
	// tasks in the queue or an error
	Count(context.Context) (int, int, error)
	// Stop cancels the contexts of pulled tasks.
	Stop(context.Context) error
}

type memQueue struct {
	pending   *arrayqueue.Queue
	running   map[string]*Task
	lock      *sync.RWMutex
	ctx       context.Context
	ctxCancel context.CancelFunc
}

// New returns a queue backed only by the process memory
func New() Queue {
	ctx, cancel := context.WithCancel(context.Background())
	return &memQueue{
		pending:   arrayqueue.New(),
		running:   make(map[string]*Task),
		lock:      &sync.RWMutex{},
		ctx:       ctx,
		ctxCancel: cancel,
	}
}

func (mq *memQueue) Push(ctx context.Context, t *Task) error {
	return mq.withLock(ctx, func() error {
		mq.pending.Enqueue(t)
		return nil
	})
}

func (mq *memQueue) Pull(ctx context.Context) (*Task, context.Context, error) {
	var task *Task
	err := mq.withLock(ctx, func() error {
		v, ok := mq.pending.Dequeue()
		if !ok {
			return nil
		}
		task = v.(*Task)
		mq.running[task.ID()] = task
		return nil
	})
	if err != nil || task == nil {
		return nil, nil, err
	}
	return task, mq.ctx, nil
}

func (mq *memQueue) Drop(ctx context.Context, id string) error {
	return mq.withLock(ctx, func() error {
		t, ok := mq.running[id]
		if !ok {
			return nil
		}
		delete(mq.running, id)
		mq.pending.Enqueue(t)
		return nil
	})
}

func (mq *memQueue) Complete(ctx context.Context, id string) error {
	return mq.withLock(ctx, func() error {
		delete(mq.running, id)
		return nil
	})
}

func (mq *memQueue) Count(ctx context.Context) (int, int, error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}
	mq.lock.RLock()
	defer mq.lock.RUnlock()
	return mq.pending.Size(), len(mq.running), nil
}

func (mq *memQueue) Stop(ctx context.Context) error {
	mq.ctxCancel()
	return nil
}

func (mq *memQueue) String() string {
	pending, running, _ := mq.Count(context.Background())
	return fmt.Sprintf("{Queue pending: %d running: %d}", pending, running)
}

func (mq *memQueue) withLock(ctx context.Context, f func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	mq.lock.Lock()
	defer mq.lock.Unlock()
	return f()
}
