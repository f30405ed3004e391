package automation

import (
	"context"
	"sync"
)

// FrontDocument is the lane key for calls that target whatever document is
// frontmost in Keynote
const FrontDocument = "front document"

// Lanes serializes work per key. Calls with different keys run in parallel,
// calls with the same key run one at a time in arrival order of acquisition.
//
// A nil *Lanes is valid and never blocks.
type Lanes struct {
	mu    sync.Mutex
	lanes map[string]*lane
}

type lane struct {
	sem  chan struct{}
	refs int
}

// NewLanes creates an empty lane set
func NewLanes() *Lanes {
	return &Lanes{lanes: make(map[string]*lane)}
}

// Key normalizes a document name into a lane key
func Key(docName string) string {
	if docName == "" {
		return FrontDocument
	}
	return docName
}

// Acquire blocks until the lane for key is free or ctx is done.
// The returned release func must be called exactly once.
func (l *Lanes) Acquire(ctx context.Context, key string) (func(), error) {
	if l == nil {
		return func() {}, nil
	}

	l.mu.Lock()
	ln, ok := l.lanes[key]
	if !ok {
		ln = &lane{sem: make(chan struct{}, 1)}
		l.lanes[key] = ln
	}
	ln.refs++
	l.mu.Unlock()

	select {
	case ln.sem <- struct{}{}:
	case <-ctx.Done():
		l.drop(key, ln)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-ln.sem
			l.drop(key, ln)
		})
	}, nil
}

// Len reports how many lanes are currently referenced
func (l *Lanes) Len() int {
	if l == nil {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.lanes)
}

func (l *Lanes) drop(key string, ln *lane) {
	l.mu.Lock()
	defer l.mu.Unlock()
	ln.refs--
	if ln.refs == 0 {
		delete(l.lanes, key)
	}
}
