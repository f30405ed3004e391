package hook

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
)

// Manager dispatches hook events to registered handlers. A nil *Manager
// allows everything.
type Manager struct {
	mu       sync.RWMutex
	handlers map[HookPoint][]Handler
}

func NewManager() *Manager {
	return &Manager{
		handlers: make(map[HookPoint][]Handler),
	}
}

// Register adds handler to each of its points. Ties in priority keep
// registration order.
func (m *Manager) Register(handler Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, point := range handler.Points() {
		// Trigger may still hold the old slice; never write to it
		hs := append(slices.Clone(m.handlers[point]), handler)
		sort.SliceStable(hs, func(i, j int) bool {
			return hs[i].Priority() > hs[j].Priority()
		})
		m.handlers[point] = hs
	}
}

// Trigger runs the handlers for data.Point in priority order and stops at
// the first deny. A handler that returns no feedback counts as a deny.
func (m *Manager) Trigger(ctx context.Context, data *HookData) (*Feedback, error) {
	if m == nil {
		return AllowFeedback(), nil
	}

	m.mu.RLock()
	handlers := m.handlers[data.Point]
	m.mu.RUnlock()

	for _, handler := range handlers {
		feedback, err := handler.Handle(ctx, data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", handler.Name(), err)
		}
		if feedback == nil {
			return DenyFeedback(handler.Name() + " returned no feedback"), nil
		}
		if !feedback.Allow {
			return feedback, nil
		}
	}

	return AllowFeedback(), nil
}

// HasHandlers reports whether anything listens on point
func (m *Manager) HasHandlers(point HookPoint) bool {
	if m == nil {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.handlers[point]) > 0
}

// ListHandlers returns handler names for point in execution order
func (m *Manager) ListHandlers(point HookPoint) []string {
	if m == nil {
		return nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	handlers := m.handlers[point]
	names := make([]string, len(handlers))
	for i, h := range handlers {
		names[i] = h.Name()
	}
	return names
}
