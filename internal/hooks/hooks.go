// Package hooks maps named request-lifecycle events to callbacks.
package hooks

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// DefaultPriority is used by AddAction when no priority is given.
const DefaultPriority = 10

// ErrHookRequired is returned when an action is registered without a hook name.
var ErrHookRequired = errors.New("hook name is required")

// Action is a callback bound to a lifecycle event.
type Action func(ctx context.Context) error

// registration is an action plus its ordering data.
type registration struct {
	name     string
	priority int
	seq      int
	action   Action
}

// Registry stores actions per hook and fires them in priority order.
// Lower priorities run first; equal priorities run in registration order.
type Registry struct {
	mu      sync.RWMutex
	actions map[string][]registration
	seq     int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{actions: make(map[string][]registration)}
}

// AddAction binds action to hook at DefaultPriority.
func (r *Registry) AddAction(hook, name string, action Action) error {
	return r.AddActionPriority(hook, name, DefaultPriority, action)
}

// AddActionPriority binds action to hook at the given priority.
// name identifies the action in errors and must be unique per hook.
func (r *Registry) AddActionPriority(hook, name string, priority int, action Action) error {
	hook = strings.TrimSpace(hook)
	if hook == "" {
		return ErrHookRequired
	}
	if action == nil {
		return fmt.Errorf("action %q for hook %s is nil", name, hook)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.actions == nil {
		r.actions = make(map[string][]registration)
	}
	for _, reg := range r.actions[hook] {
		if reg.name == name {
			return fmt.Errorf("action %q already registered for hook %s", name, hook)
		}
	}

	r.seq++
	regs := append(r.actions[hook], registration{name: name, priority: priority, seq: r.seq, action: action})
	slices.SortStableFunc(regs, func(a, b registration) int {
		if a.priority != b.priority {
			return a.priority - b.priority
		}
		return a.seq - b.seq
	})
	r.actions[hook] = regs
	return nil
}

// RemoveAction unbinds a named action. It reports whether anything was removed.
func (r *Registry) RemoveAction(hook, name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	regs := r.actions[hook]
	idx := slices.IndexFunc(regs, func(reg registration) bool { return reg.name == name })
	if idx < 0 {
		return false
	}
	r.actions[hook] = slices.Delete(slices.Clone(regs), idx, idx+1)
	return true
}

// HasAction reports whether hook has any bound actions.
func (r *Registry) HasAction(hook string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.actions[hook]) > 0
}

// DoAction fires every action bound to hook and returns the joined errors.
// A failing action does not stop the remaining ones. Actions run outside the lock,
// so they may register or remove actions themselves.
func (r *Registry) DoAction(ctx context.Context, hook string) error {
	r.mu.RLock()
	regs := slices.Clone(r.actions[hook])
	r.mu.RUnlock()

	var errs []error
	for _, reg := range regs {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := reg.action(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s/%s: %w", hook, reg.name, err))
		}
	}
	return errors.Join(errs...)
}
