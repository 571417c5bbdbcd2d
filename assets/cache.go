// Package assets caches loaded resources by name. Values live in one of two
// scopes: local values belong to the current screen and are dropped with
// UnloadAll, global values persist until UnloadAllGlobal.
package assets

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"sync"
)

var ErrNoLoader = errors.New("assets: no loader")

// Loader produces the value for name.
type Loader[T any] func(name string) (T, error)

// Cache is safe for concurrent use.
type Cache[T any] struct {
	mu       sync.Mutex
	fallback Loader[T]
	loaders  map[string]Loader[T]
	release  func(name string, value T)
	logger   *slog.Logger
	local    map[string]T
	global   map[string]T
}

type Option[T any] func(*Cache[T])

// WithRelease sets a callback run for every value that leaves the cache.
func WithRelease[T any](release func(name string, value T)) Option[T] {
	return func(c *Cache[T]) { c.release = release }
}

func WithLogger[T any](logger *slog.Logger) Option[T] {
	return func(c *Cache[T]) { c.logger = logger }
}

// NewCache creates a cache that loads names without a registered loader with
// fallback. fallback may be nil.
func NewCache[T any](fallback Loader[T], opts ...Option[T]) *Cache[T] {
	c := &Cache[T]{
		fallback: fallback,
		loaders:  make(map[string]Loader[T]),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		local:    make(map[string]T),
		global:   make(map[string]T),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register sets the loader used for name.
func (c *Cache[T]) Register(name string, load Loader[T]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaders[name] = load
}

func (c *Cache[T]) loadLocked(name string) (T, error) {
	load, ok := c.loaders[name]
	if !ok {
		load = c.fallback
	}
	if load == nil {
		var zero T
		return zero, fmt.Errorf("%w for %q", ErrNoLoader, name)
	}
	v, err := load(name)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("assets: loading %q: %w", name, err)
	}
	c.logger.Debug("asset loaded", "name", name)
	return v, nil
}

func (c *Cache[T]) store(scope map[string]T, name string, v T) {
	if old, ok := scope[name]; ok {
		c.releaseValue(name, old)
	}
	scope[name] = v
}

func (c *Cache[T]) releaseValue(name string, v T) {
	if c.release != nil {
		c.release(name, v)
	}
	c.logger.Debug("asset released", "name", name)
}

// Load (re)loads name into the local scope.
func (c *Cache[T]) Load(name string) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, err := c.loadLocked(name)
	if err != nil {
		return v, err
	}
	c.store(c.local, name, v)
	return v, nil
}

// LoadGlobal (re)loads name into the global scope.
func (c *Cache[T]) LoadGlobal(name string) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, err := c.loadLocked(name)
	if err != nil {
		return v, err
	}
	c.store(c.global, name, v)
	return v, nil
}

// Get returns the cached value for name, checking the local scope, then the
// global scope, and loading into the local scope on a miss.
func (c *Cache[T]) Get(name string) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.local[name]; ok {
		return v, nil
	}
	if v, ok := c.global[name]; ok {
		return v, nil
	}
	v, err := c.loadLocked(name)
	if err != nil {
		return v, err
	}
	c.local[name] = v
	return v, nil
}

// Unload drops name from the local scope and reports whether it was there.
func (c *Cache[T]) Unload(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.unload(c.local, name)
}

// UnloadGlobal drops name from the global scope and reports whether it was
// there.
func (c *Cache[T]) UnloadGlobal(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.unload(c.global, name)
}

func (c *Cache[T]) unload(scope map[string]T, name string) bool {
	v, ok := scope[name]
	if !ok {
		return false
	}
	delete(scope, name)
	c.releaseValue(name, v)
	return true
}

// UnloadAll empties the local scope.
func (c *Cache[T]) UnloadAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.unloadAll(c.local)
}

// UnloadAllGlobal empties the global scope.
func (c *Cache[T]) UnloadAllGlobal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.unloadAll(c.global)
}

func (c *Cache[T]) unloadAll(scope map[string]T) {
	for _, name := range slices.Sorted(maps.Keys(scope)) {
		c.releaseValue(name, scope[name])
	}
	clear(scope)
}

// Names lists the cached names of both scopes, sorted.
func (c *Cache[T]) Names() (local, global []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Sorted(maps.Keys(c.local)), slices.Sorted(maps.Keys(c.global))
}
