// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"reflect"
	"testing"
)

// TestRegistryRegister tests backend registration.
func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()

	r.Register("test", 50, []string{"PNG", ".bmp"}, newFake, nil)

	entry, ok := r.Get("test")
	if !ok {
		t.Fatal("registered backend not found")
	}

	if entry.Name != "test" {
		t.Errorf("Name = %s, want test", entry.Name)
	}
	if entry.Priority != 50 {
		t.Errorf("Priority = %d, want 50", entry.Priority)
	}
	if !reflect.DeepEqual(entry.Formats, []string{"png", "bmp"}) {
		t.Errorf("Formats = %v, want normalized [png bmp]", entry.Formats)
	}
	if !entry.Available() {
		t.Error("backend should be available (nil Available func)")
	}
}

// TestRegistryGetReturnsCopy verifies callers cannot mutate registry state.
func TestRegistryGetReturnsCopy(t *testing.T) {
	r := NewRegistry()
	r.Register("test", 1, []string{"png"}, newFake, nil)

	entry, _ := r.Get("test")
	entry.Formats[0] = "svg"
	entry.Priority = 99

	again, _ := r.Get("test")
	if again.Formats[0] != "png" || again.Priority != 1 {
		t.Errorf("registry entry was modified through Get: %+v", again)
	}
}

// TestRegistryUnregister tests backend removal.
func TestRegistryUnregister(t *testing.T) {
	r := NewRegistry()
	r.Register("temp", 10, []string{"png"}, newFake, nil)

	if _, ok := r.Get("temp"); !ok {
		t.Fatal("backend should exist before unregister")
	}

	r.Unregister("temp")

	if _, ok := r.Get("temp"); ok {
		t.Error("backend should not exist after unregister")
	}
}

// TestRegistryList tests listing backends in priority order.
func TestRegistryList(t *testing.T) {
	r := NewRegistry()
	r.Register("low", 10, nil, newFake, nil)
	r.Register("high", 100, nil, newFake, nil)
	r.Register("medium", 50, nil, newFake, nil)
	r.Register("also-medium", 50, nil, newFake, nil)

	got := r.List()
	want := []string{"high", "also-medium", "medium", "low"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
}

// TestRegistryFormats tests the format listing skips unavailable backends.
func TestRegistryFormats(t *testing.T) {
	r := NewRegistry()
	r.Register("raster", 10, []string{"png", "bmp"}, newFake, nil)
	r.Register("vector", 10, []string{"svg", "png"}, newFake, nil)
	r.Register("off", 10, []string{"gif"}, newFake, func() bool { return false })

	got := r.Formats()
	want := []string{"bmp", "png", "svg"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Formats() = %v, want %v", got, want)
	}
}

// TestRegistryNewByName tests creating a surface by backend name.
func TestRegistryNewByName(t *testing.T) {
	r := NewRegistry()
	r.Register("fake", 10, []string{"fake"}, newFake, nil)

	s, err := r.NewByName("fake", Options{Width: 64, Height: 32})
	if err != nil {
		t.Fatalf("NewByName failed: %v", err)
	}
	if s.Width() != 64 || s.Height() != 32 {
		t.Errorf("size = %dx%d, want 64x32", s.Width(), s.Height())
	}
}

func TestRegistryNewByNameNotFound(t *testing.T) {
	r := NewRegistry()

	_, err := r.NewByName("missing", Options{Width: 1, Height: 1})
	var nf *BackendNotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("err = %v, want BackendNotFoundError", err)
	}
	if nf.Name != "missing" {
		t.Errorf("Name = %s, want missing", nf.Name)
	}
}

func TestRegistryNewByNameUnavailable(t *testing.T) {
	r := NewRegistry()
	r.Register("off", 10, nil, newFake, func() bool { return false })

	_, err := r.NewByName("off", Options{Width: 1, Height: 1})
	var ua *BackendUnavailableError
	if !errors.As(err, &ua) {
		t.Fatalf("err = %v, want BackendUnavailableError", err)
	}
}

// TestRegistryPrioritySelection verifies the highest priority backend
// serving a format wins.
func TestRegistryPrioritySelection(t *testing.T) {
	r := NewRegistry()

	var used string
	factory := func(name string) Factory {
		return func(opts Options) (Surface, error) {
			used = name
			return newFake(opts)
		}
	}
	r.Register("low", 10, []string{"png"}, factory("low"), nil)
	r.Register("high", 100, []string{"png"}, factory("high"), nil)
	r.Register("other", 1000, []string{"svg"}, factory("other"), nil)

	s, err := r.NewByFormat("png", Options{Width: 1, Height: 1})
	if err != nil {
		t.Fatalf("NewByFormat failed: %v", err)
	}
	if used != "high" {
		t.Errorf("used backend %q, want high", used)
	}
	if got := s.(*fakeSurface).format; got != "png" {
		t.Errorf("opts.Format = %q, want png", got)
	}
}

// TestRegistryFactoryFallback verifies a failing factory falls through to the
// next backend and that the last error is reported when all fail.
func TestRegistryFactoryFallback(t *testing.T) {
	r := NewRegistry()
	boom := errors.New("boom")
	r.Register("broken", 100, []string{"png"}, func(Options) (Surface, error) { return nil, boom }, nil)
	r.Register("working", 10, []string{"png"}, newFake, nil)

	if _, err := r.NewByFormat("png", Options{Width: 1, Height: 1}); err != nil {
		t.Fatalf("expected fallback to working backend, got %v", err)
	}

	r.Unregister("working")
	if _, err := r.NewByFormat("png", Options{Width: 1, Height: 1}); !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
}

func TestRegistryFormatNotSupported(t *testing.T) {
	r := NewRegistry()
	r.Register("off", 10, []string{"png"}, newFake, func() bool { return false })

	_, err := r.NewByFormat("png", Options{Width: 1, Height: 1})
	var fns *FormatNotSupportedError
	if !errors.As(err, &fns) {
		t.Fatalf("err = %v, want FormatNotSupportedError", err)
	}
}

// TestRegistryOverwrite verifies re-registering replaces the entry.
func TestRegistryOverwrite(t *testing.T) {
	r := NewRegistry()
	r.Register("dup", 10, []string{"png"}, newFake, nil)
	r.Register("dup", 20, []string{"svg"}, newFake, nil)

	entry, _ := r.Get("dup")
	if entry.Priority != 20 || entry.Formats[0] != "svg" {
		t.Errorf("entry = %+v, want overwritten", entry)
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&BackendNotFoundError{Name: "x"}, "surface: backend not found: x"},
		{&BackendUnavailableError{Name: "x"}, "surface: backend unavailable: x"},
		{&FormatNotSupportedError{Format: "x"}, "surface: no backend for format: x"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}
