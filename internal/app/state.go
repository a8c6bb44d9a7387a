// Package app provides application state, file watching and the theme.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"image-view/internal/image"
	"image-view/internal/viewer"
)

// ErrNoImage is returned by operations that need an open image.
var ErrNoImage = errors.New("no image loaded")

// State holds the open document and its viewer.
type State struct {
	mu sync.RWMutex

	// Document
	Path     string
	Format   string
	Modified bool

	Viewer *viewer.Viewer

	loading bool
	logger  *slog.Logger

	// Event listeners
	listeners map[EventType][]EventListener
}

// EventType identifies different application events.
type EventType int

const (
	EventImageLoaded EventType = iota
	EventImageSaved
	EventModified
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// NewState creates application state around v. Crop, rotation and
// grayscale changes in the viewer mark the document modified.
func NewState(v *viewer.Viewer, logger *slog.Logger) *State {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &State{
		Viewer:    v,
		logger:    logger,
		listeners: make(map[EventType][]EventListener),
	}

	markModified := func(interface{}) {
		s.mu.RLock()
		skip := s.loading
		s.mu.RUnlock()
		if !skip {
			s.SetModified(true)
		}
	}
	v.On(viewer.EventCropChanged, markModified)
	v.On(viewer.EventImageChanged, markModified)
	return s
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// SetModified marks the document as modified and emits an event on change.
func (s *State) SetModified(modified bool) {
	s.mu.Lock()
	changed := s.Modified != modified
	s.Modified = modified
	s.mu.Unlock()
	if changed {
		s.Emit(EventModified, modified)
	}
}

// IsModified reports whether the viewer was changed since the last load or save.
func (s *State) IsModified() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Modified
}

// CurrentPath returns the path of the open image, or "".
func (s *State) CurrentPath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Path
}

// Open loads the image at path into the viewer.
func (s *State) Open(path string) error {
	layer, err := image.Load(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	s.Viewer.SetImage(layer.Image)

	s.mu.Lock()
	s.loading = false
	s.Path = path
	s.Format = layer.Format
	s.mu.Unlock()

	s.logger.Info("image loaded", "path", path, "format", layer.Format, "size", layer.Size())
	s.SetModified(false)
	s.Emit(EventImageLoaded, layer)
	return nil
}

// Reload reads the open image from disk again, discarding viewer changes.
func (s *State) Reload() error {
	path := s.CurrentPath()
	if path == "" {
		return ErrNoImage
	}
	return s.Open(path)
}

// SaveVisible writes the visible region (crop or whole image) to path.
func (s *State) SaveVisible(path string) error {
	img, ok := s.Viewer.VisibleRegion()
	if !ok {
		return ErrNoImage
	}
	if err := image.Save(path, img); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}

	s.logger.Info("image saved", "path", path, "size", img.Bounds().Size())
	s.SetModified(false)
	s.Emit(EventImageSaved, path)
	return nil
}
