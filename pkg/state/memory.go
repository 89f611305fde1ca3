package state

import (
	"context"
	"fmt"
	"sync"
)

type InMemoryStateManager struct {
	lock sync.RWMutex
	view *View
}

func NewInMemoryStateManager() *InMemoryStateManager {
	return &InMemoryStateManager{
		view: &View{},
	}
}

func (m *InMemoryStateManager) Get(ctx context.Context) (*View, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.view.Copy(), nil
}

func (m *InMemoryStateManager) Set(ctx context.Context, view *View) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if view == nil {
		return fmt.Errorf("view is nil")
	}

	m.view = view.Copy()
	return nil
}
