package component

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kbukum/meetnotes/logger"
)

// stopTimeout bounds one Stop when ctx carries no deadline of its own.
const stopTimeout = 10 * time.Second

type slot struct {
	c       Component
	started bool
}

// Registry starts components in registration order and stops them in
// reverse, so dependencies go in first.
type Registry struct {
	mu    sync.RWMutex
	slots []*slot
	log   *logger.Logger
}

// NewRegistry returns an empty registry. A nil log means the global logger.
func NewRegistry(log *logger.Logger) *Registry {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Registry{log: log.WithComponent("components")}
}

func (r *Registry) Register(c Component) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.find(c.Name()) != nil {
		return fmt.Errorf("component %s already registered", c.Name())
	}
	r.slots = append(r.slots, &slot{c: c})
	r.log.Debug("Component registered", logger.Fields(logger.FieldComponent, c.Name()))
	return nil
}

// StartAll stops at the first failure. Whatever started stays started
// until StopAll.
func (r *Registry) StartAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.slots {
		name := s.c.Name()
		if err := s.c.Start(ctx); err != nil {
			r.log.Error("Component start failed", logger.Fields(logger.FieldComponent, name, logger.FieldError, err.Error()))
			return fmt.Errorf("failed to start %s: %w", name, err)
		}
		s.started = true

		fields := logger.Fields(logger.FieldComponent, name)
		if d, ok := s.c.(Describable); ok {
			desc := d.Describe()
			fields["type"], fields["details"] = desc.Type, desc.Details
		}
		r.log.Info("Component started", fields)
	}
	return nil
}

// StopAll stops started components newest first and joins their errors.
func (r *Registry) StopAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var errs []error
	for _, s := range slices.Backward(r.slots) {
		if !s.started {
			continue
		}
		s.started = false
		if err := r.stop(ctx, s.c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (r *Registry) stop(ctx context.Context, c Component) error {
	ctx, cancel := context.WithTimeout(ctx, stopTimeout)
	defer cancel()
	name := c.Name()
	if err := c.Stop(ctx); err != nil {
		r.log.Error("Component stop failed", logger.Fields(logger.FieldComponent, name, logger.FieldError, err.Error()))
		return fmt.Errorf("failed to stop %s: %w", name, err)
	}
	r.log.Info("Component stopped", logger.Fields(logger.FieldComponent, name))
	return nil
}

// HealthAll checks every component concurrently and reports in
// registration order.
func (r *Registry) HealthAll(ctx context.Context) []Health {
	all := r.All()
	out := make([]Health, len(all))
	var g errgroup.Group
	for i, c := range all {
		g.Go(func() error {
			out[i] = c.Health(ctx)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// Get returns the named component or nil.
func (r *Registry) Get(name string) Component {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s := r.find(name); s != nil {
		return s.c
	}
	return nil
}

func (r *Registry) All() []Component {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Component, len(r.slots))
	for i, s := range r.slots {
		out[i] = s.c
	}
	return out
}

func (r *Registry) find(name string) *slot {
	i := slices.IndexFunc(r.slots, func(s *slot) bool { return s.c.Name() == name })
	if i < 0 {
		return nil
	}
	return r.slots[i]
}
