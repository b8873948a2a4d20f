package tree

import (
	"context"
	"strconv"
	"sync"
)

/*
NodeStore is an interface to manage the arena where the nodes of a tree
live. Nodes are created, retrieved, updated and deleted by ID; a node only
references its parent and children through their IDs.

All its methods take a context that may allow cancelling the operation
(thus forcing the return of an error).
*/
type NodeStore interface {
	// Create takes a node and stores it for the first time, assigning it
	// an ID not used by any other node of the store.
	Create(ctx context.Context, n *Node) error
	// Get takes an id and returns the node with that id, or nil if there
	// is none.
	Get(ctx context.Context, id string) (*Node, error)
	// Store takes a node already existing in the store and updates it
	// without altering its ID.
	Store(ctx context.Context, n *Node) error
	// Delete removes a node from the store.
	Delete(ctx context.Context, n *Node) error
	// Close frees any resources in use by the store.
	Close(ctx context.Context) error
}

type memoryNodeStore struct {
	nodes  map[string]*Node
	lock   *sync.RWMutex
	lastID uint64
}

// NewMemoryNodeStore returns an implementation
// of NodeStore with the process memory space
// as underlying backend
func NewMemoryNodeStore() NodeStore {
	return &memoryNodeStore{
		nodes: make(map[string]*Node),
		lock:  &sync.RWMutex{},
	}
}

func (mns *memoryNodeStore) Create(ctx context.Context, n *Node) error {
	return withLock(ctx, mns.lock.Lock, mns.lock.Unlock, func() error {
		for {
			mns.lastID++
			id := strconv.FormatUint(mns.lastID, 10)
			if _, taken := mns.nodes[id]; !taken {
				n.ID = id
				mns.nodes[id] = n
				return nil
			}
		}
	})
}

func (mns *memoryNodeStore) Store(ctx context.Context, n *Node) error {
	return withLock(ctx, mns.lock.Lock, mns.lock.Unlock, func() error {
		mns.nodes[n.ID] = n
		return nil
	})
}

func (mns *memoryNodeStore) Get(ctx context.Context, id string) (*Node, error) {
	var n *Node
	err := withLock(ctx, mns.lock.RLock, mns.lock.RUnlock, func() error {
		n = mns.nodes[id]
		return nil
	})
	return n, err
}

func (mns *memoryNodeStore) Delete(ctx context.Context, n *Node) error {
	return withLock(ctx, mns.lock.Lock, mns.lock.Unlock, func() error {
		delete(mns.nodes, n.ID)
		return nil
	})
}

func (mns *memoryNodeStore) Close(ctx context.Context) error {
	return nil
}

// withLock runs f holding the lock, unless ctx is done before the lock is
// acquired, in which case the context error is returned and f is not run.
func withLock(ctx context.Context, lock, unlock func(), f func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	gotLock := make(chan struct{})
	go func() {
		lock()
		select {
		case <-ctx.Done():
			unlock()
		case gotLock <- struct{}{}:
		}
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-gotLock:
		defer unlock()
	}
	return f()
}
