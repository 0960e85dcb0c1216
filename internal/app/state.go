// Package app provides application lifecycle management, session state, and events.
package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"wall-meter/internal/analysis"
	"wall-meter/internal/image"
	"wall-meter/internal/mask"
	"wall-meter/internal/rectify"
	"wall-meter/pkg/geometry"
	"wall-meter/pkg/units"
)

// State holds the application state for one measurement session: the
// loaded photo, the rectification inputs and output, the mask editing
// session, and the derived analysis.
type State struct {
	mu sync.RWMutex

	// Project
	ProjectPath string
	Modified    bool

	// Source photo
	Photo *image.Photo

	// Rectification inputs
	Corners *geometry.Quadrilateral
	Real    units.RealDimensions

	// Rectification output; nil until RectifyPhoto succeeds
	Rectified *rectify.Result

	// Mask editing session over the rectified image; nil until rectified
	Editor *mask.Editor

	// Declared openings
	Deselections []analysis.DeselectItem

	// Derived analysis; recomputed whole on every mask or deselection change
	Analysis *analysis.Result

	// Event listeners
	listeners map[EventType][]EventListener
}

// EventType identifies different application events.
type EventType int

const (
	EventProjectLoaded EventType = iota
	EventProjectSaved
	EventPhotoLoaded
	EventRectified
	EventMaskChanged
	EventDeselectionsChanged
	EventAnalysisUpdated
	EventModified
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// NewState creates a new application state.
func NewState() *State {
	return &State{
		Real:      units.RealDimensions{Unit: units.Meter},
		listeners: make(map[EventType][]EventListener),
	}
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

// SetModified marks the project as modified and emits an event.
func (s *State) SetModified(modified bool) {
	s.mu.Lock()
	s.Modified = modified
	s.mu.Unlock()
	s.Emit(EventModified, modified)
}

// LoadPhoto loads the wall photo. Any previous rectification and mask
// session are discarded since they were derived from the old photo.
func (s *State) LoadPhoto(path string) error {
	photo, err := image.Load(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.Photo = photo
	s.Corners = nil
	s.Rectified = nil
	s.Editor = nil
	s.Analysis = nil
	s.mu.Unlock()

	s.SetModified(true)
	s.Emit(EventPhotoLoaded, photo)
	return nil
}

// SetCorners stores the four user-picked wall corners in photo pixel
// coordinates.
func (s *State) SetCorners(q geometry.Quadrilateral) {
	s.mu.Lock()
	s.Corners = &q
	s.mu.Unlock()
	s.SetModified(true)
}

// SetRealDimensions stores the wall's real-world size.
func (s *State) SetRealDimensions(d units.RealDimensions) {
	s.mu.Lock()
	s.Real = d
	s.mu.Unlock()
	s.SetModified(true)
}

// RectifyPhoto warps the photo into its fronto-parallel view and starts a
// fresh mask editing session over the result. Photo, corners, and real
// dimensions must all be set.
func (s *State) RectifyPhoto() error {
	s.mu.RLock()
	photo := s.Photo
	corners := s.Corners
	real := s.Real
	s.mu.RUnlock()

	if photo == nil {
		return fmt.Errorf("no photo loaded")
	}
	if corners == nil {
		return fmt.Errorf("no corners picked")
	}

	result, err := rectify.Rectify(photo.RGBA(), *corners, real)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.Rectified = result
	s.Editor = mask.NewEditor(image.ToRGBA(result.Image))
	s.Analysis = nil
	s.mu.Unlock()

	s.SetModified(true)
	s.Emit(EventRectified, result)
	s.Recompute()
	return nil
}

// MaskEdited signals that the mask changed; recomputes the analysis and
// notifies listeners.
func (s *State) MaskEdited() {
	s.SetModified(true)
	s.Emit(EventMaskChanged, nil)
	s.Recompute()
}

// SetDeselections replaces the opening list and recomputes.
func (s *State) SetDeselections(items []analysis.DeselectItem) {
	s.mu.Lock()
	s.Deselections = items
	s.mu.Unlock()

	s.SetModified(true)
	s.Emit(EventDeselectionsChanged, items)
	s.Recompute()
}

// AddDeselection appends one opening and recomputes.
func (s *State) AddDeselection(item analysis.DeselectItem) {
	s.mu.Lock()
	s.Deselections = append(s.Deselections, item)
	items := s.Deselections
	s.mu.Unlock()

	s.SetModified(true)
	s.Emit(EventDeselectionsChanged, items)
	s.Recompute()
}

// RemoveDeselection deletes the opening at index i and recomputes.
func (s *State) RemoveDeselection(i int) {
	s.mu.Lock()
	if i < 0 || i >= len(s.Deselections) {
		s.mu.Unlock()
		return
	}
	s.Deselections = append(s.Deselections[:i], s.Deselections[i+1:]...)
	items := s.Deselections
	s.mu.Unlock()

	s.SetModified(true)
	s.Emit(EventDeselectionsChanged, items)
	s.Recompute()
}

// Recompute derives the analysis from the current mask, dimensions, and
// openings. All derived fields are replaced together so they can never be
// stale relative to each other.
func (s *State) Recompute() {
	s.mu.Lock()
	if s.Editor == nil {
		s.Analysis = nil
		s.mu.Unlock()
		return
	}
	result := analysis.Compute(s.Editor.CoveragePercent(), s.Real, s.Deselections)
	s.Analysis = &result
	s.mu.Unlock()

	s.Emit(EventAnalysisUpdated, &result)
}

// ProjectFile is the JSON structure of a .wallproj file. The mask is
// persisted as its action log and replayed on load, so a restored session
// keeps its full undo history.
type ProjectFile struct {
	Version   int    `json:"version"`
	PhotoPath string `json:"photo,omitempty"`

	Corners *geometry.Quadrilateral `json:"corners,omitempty"`
	Real    units.RealDimensions    `json:"real_dimensions"`

	Actions      []mask.Action           `json:"actions,omitempty"`
	Deselections []analysis.DeselectItem `json:"deselections,omitempty"`

	Analysis *analysis.Result `json:"analysis,omitempty"`
}

// SaveProject saves the session to the specified path.
func (s *State) SaveProject(path string) error {
	s.mu.RLock()
	proj := ProjectFile{
		Version:      1,
		Real:         s.Real,
		Corners:      s.Corners,
		Deselections: s.Deselections,
		Analysis:     s.Analysis,
	}
	if s.Photo != nil && s.Photo.Path != "" {
		proj.PhotoPath, _ = filepath.Rel(filepath.Dir(path), s.Photo.Path)
	}
	if s.Editor != nil {
		proj.Actions = s.Editor.Actions()
	}
	s.mu.RUnlock()

	data, err := json.MarshalIndent(proj, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}

	s.mu.Lock()
	s.ProjectPath = path
	s.Modified = false
	s.mu.Unlock()

	s.Emit(EventProjectSaved, path)
	return nil
}

// LoadProject restores a session from the specified path: reload the
// photo, re-run rectification with the saved corners and dimensions, and
// replay the mask action log against the rectified image.
func (s *State) LoadProject(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var proj ProjectFile
	if err := json.Unmarshal(data, &proj); err != nil {
		return err
	}

	if proj.PhotoPath != "" {
		photoPath := filepath.Join(filepath.Dir(path), proj.PhotoPath)
		if err := s.LoadPhoto(photoPath); err != nil {
			return err
		}
	}

	s.mu.Lock()
	s.Real = proj.Real
	s.Corners = proj.Corners
	s.Deselections = proj.Deselections
	s.mu.Unlock()

	if proj.Corners != nil && s.Photo != nil {
		if err := s.RectifyPhoto(); err != nil {
			return err
		}
		s.mu.Lock()
		editor := s.Editor
		s.mu.Unlock()
		editor.Replay(proj.Actions)
		s.Recompute()
	}

	s.mu.Lock()
	s.ProjectPath = path
	s.Modified = false
	s.mu.Unlock()

	s.Emit(EventProjectLoaded, path)
	return nil
}
