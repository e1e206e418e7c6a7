// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"sort"
	"strings"
	"sync"
)

// Factory creates a new Surface with the given options.
// Implementations should validate options and return descriptive errors.
type Factory func(opts Options) (Surface, error)

// RegistryEntry represents a registered surface backend.
type RegistryEntry struct {
	// Name is the unique identifier for this backend.
	Name string

	// Priority determines selection order when several backends serve the
	// same format (higher = preferred).
	Priority int

	// Formats lists the output formats the backend can encode.
	Formats []string

	// Factory creates surface instances.
	Factory Factory

	// Available reports if the backend is available on this system.
	Available func() bool
}

// globalRegistry is the default registry.
var globalRegistry = NewRegistry()

// Registry manages registered surface backends.
//
// Example registration:
//
//	func init() {
//	    surface.Register("raster", 10, []string{"png", "bmp", "tiff"}, factory, nil)
//	}
//
// Example usage:
//
//	s, err := surface.NewByName("raster", surface.DefaultOptions(800, 600))
//	// or by output format:
//	s, err := surface.NewByFormat("png", surface.DefaultOptions(800, 600))
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*RegistryEntry
}

// NewRegistry creates a new empty registry.
// Most code should use the global registry via Register and NewByFormat.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*RegistryEntry),
	}
}

// Register adds a backend to the global registry.
//
// If available is nil, the backend is assumed always available.
// Registering a name that already exists replaces the previous entry.
func Register(name string, priority int, formats []string, factory Factory, available func() bool) {
	globalRegistry.Register(name, priority, formats, factory, available)
}

// Unregister removes a backend from the global registry.
func Unregister(name string) {
	globalRegistry.Unregister(name)
}

// List returns all registered backend names sorted by priority (highest first).
func List() []string {
	return globalRegistry.List()
}

// Formats returns every format served by an available backend, sorted.
func Formats() []string {
	return globalRegistry.Formats()
}

// Get returns information about a specific backend.
func Get(name string) (*RegistryEntry, bool) {
	return globalRegistry.Get(name)
}

// NewByName creates a surface using a specific named backend.
func NewByName(name string, opts Options) (Surface, error) {
	return globalRegistry.NewByName(name, opts)
}

// NewByFormat creates a surface using the preferred backend for format.
func NewByFormat(format string, opts Options) (Surface, error) {
	return globalRegistry.NewByFormat(format, opts)
}

// Register adds a backend to this registry.
func (r *Registry) Register(name string, priority int, formats []string, factory Factory, available func() bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if available == nil {
		available = func() bool { return true }
	}

	normalized := make([]string, len(formats))
	for i, f := range formats {
		normalized[i] = normalizeFormat(f)
	}

	r.entries[name] = &RegistryEntry{
		Name:      name,
		Priority:  priority,
		Formats:   normalized,
		Factory:   factory,
		Available: available,
	}
}

// Unregister removes a backend from this registry.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, name)
}

// List returns all registered backend names sorted by priority.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := r.sorted(false)
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

// Formats returns every format served by an available backend, sorted.
func (r *Registry) Formats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	var formats []string
	for _, e := range r.sorted(true) {
		for _, f := range e.Formats {
			if !seen[f] {
				seen[f] = true
				formats = append(formats, f)
			}
		}
	}
	sort.Strings(formats)
	return formats
}

// Get returns information about a specific backend.
func (r *Registry) Get(name string) (*RegistryEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[name]
	if !ok {
		return nil, false
	}

	// Return a copy to prevent modification
	entryCopy := *entry
	entryCopy.Formats = append([]string(nil), entry.Formats...)
	return &entryCopy, true
}

// NewByName creates a surface using a specific backend.
func (r *Registry) NewByName(name string, opts Options) (Surface, error) {
	r.mu.RLock()
	entry, ok := r.entries[name]
	r.mu.RUnlock()

	if !ok {
		return nil, &BackendNotFoundError{Name: name}
	}

	if !entry.Available() {
		return nil, &BackendUnavailableError{Name: name}
	}

	return entry.Factory(opts)
}

// NewByFormat creates a surface using the highest-priority available backend
// that serves format. The format is passed on in opts.Format.
func (r *Registry) NewByFormat(format string, opts Options) (Surface, error) {
	format = normalizeFormat(format)

	r.mu.RLock()
	candidates := r.sorted(true)
	r.mu.RUnlock()

	var lastErr error
	for _, e := range candidates {
		if !contains(e.Formats, format) {
			continue
		}
		opts.Format = format
		s, err := e.Factory(opts)
		if err == nil {
			return s, nil
		}
		lastErr = err
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, &FormatNotSupportedError{Format: format}
}

// sorted returns entries sorted by priority (highest first), ties broken by
// name. If onlyAvailable is true, filters to available backends only.
// Must be called with lock held.
func (r *Registry) sorted(onlyAvailable bool) []*RegistryEntry {
	entries := make([]*RegistryEntry, 0, len(r.entries))
	for _, e := range r.entries {
		if onlyAvailable && !e.Available() {
			continue
		}
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Priority != entries[j].Priority {
			return entries[i].Priority > entries[j].Priority
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}

func normalizeFormat(f string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(f)), ".")
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Errors.
var (
	// ErrInvalidSize is returned by factories for non-positive dimensions.
	ErrInvalidSize = errors.New("surface: width and height must be positive")
)

// BackendNotFoundError indicates a named backend is not registered.
type BackendNotFoundError struct {
	Name string
}

func (e *BackendNotFoundError) Error() string {
	return "surface: backend not found: " + e.Name
}

// BackendUnavailableError indicates a backend exists but is not available.
type BackendUnavailableError struct {
	Name string
}

func (e *BackendUnavailableError) Error() string {
	return "surface: backend unavailable: " + e.Name
}

// FormatNotSupportedError indicates no available backend encodes a format.
type FormatNotSupportedError struct {
	Format string
}

func (e *FormatNotSupportedError) Error() string {
	return "surface: no backend for format: " + e.Format
}

// CheckSize validates the dimensions in opts.
func CheckSize(opts Options) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		return ErrInvalidSize
	}
	return nil
}
