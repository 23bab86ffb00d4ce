// Copyright 2020-2021 The OS-NVR Authors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation; version 2.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package scene

import (
	"sync"
	"sync/atomic"
)

// Scene is an ordered, concurrently-readable sequence of Items: many
// concurrent readers are allowed, but writers are exclusive.
type Scene struct {
	mu    sync.RWMutex
	items []*Item

	width, height uint32
	isGroup       bool

	nextID      int64
	renderCount uint64 // atomic, observability only
}

// NewScene returns an empty scene with the given canvas dimensions.
func NewScene(width, height uint32) *Scene {
	return &Scene{width: width, height: height}
}

// NewGroup returns an empty scene flagged as a group (a scene nested inside
// another scene's items via a SourceID lookup, never by owning pointer).
func NewGroup(width, height uint32) *Scene {
	return &Scene{width: width, height: height, isGroup: true}
}

// Dimensions returns the scene's canvas size.
func (s *Scene) Dimensions() (width, height uint32) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height
}

// SetDimensions updates the scene's canvas size.
func (s *Scene) SetDimensions(width, height uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width, s.height = width, height
}

// IsGroup reports whether this scene is a nested group.
func (s *Scene) IsGroup() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isGroup
}

// AddItem assigns the next id, marks the item dirty, and appends it at the
// back of paint order (topmost). Returns the assigned id.
func (s *Scene) AddItem(item *Item) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	item.ID = s.nextID
	item.MarkTransformDirty()
	s.items = append(s.items, item)
	return item.ID
}

// RemoveItem removes the item with the given id. Reports whether it was
// found.
func (s *Scene) RemoveItem(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, it := range s.items {
		if it.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// ItemCount returns the number of items currently in the scene.
func (s *Scene) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// MoveItem relocates the item with the given id to newIndex. Fails if
// newIndex is out of range.
func (s *Scene) MoveItem(id int64, newIndex int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if newIndex >= len(s.items) || newIndex < 0 {
		return false
	}

	idx := -1
	for i, it := range s.items {
		if it.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false
	}

	item := s.items[idx]
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	s.items = append(s.items[:newIndex], append([]*Item{item}, s.items[newIndex:]...)...)
	return true
}

// ReorderPair is a single (id, desired index) reorder request.
type ReorderPair struct {
	ID    int64
	Index int
}

// ReorderItems bulk-reorders items given a list of (id, desired index)
// pairs. Items present in the scene but absent from the list are appended,
// in their original relative order, after the reordered ones. Stable for
// ties on desired index.
func (s *Scene) ReorderItems(pairs []ReorderPair) {
	s.mu.Lock()
	defer s.mu.Unlock()

	byID := make(map[int64]*Item, len(s.items))
	for _, it := range s.items {
		byID[it.ID] = it
	}

	placed := make(map[int64]bool, len(pairs))
	type positioned struct {
		item *Item
		want int
		seq  int
	}
	var ordered []positioned
	for seq, p := range pairs {
		it, ok := byID[p.ID]
		if !ok || placed[p.ID] {
			continue
		}
		placed[p.ID] = true
		ordered = append(ordered, positioned{it, p.Index, seq})
	}

	// Stable sort by desired index, ties broken by original request order.
	for i := 1; i < len(ordered); i++ {
		for j := i; j > 0 && (ordered[j].want < ordered[j-1].want ||
			(ordered[j].want == ordered[j-1].want && ordered[j].seq < ordered[j-1].seq)); j-- {
			ordered[j], ordered[j-1] = ordered[j-1], ordered[j]
		}
	}

	result := make([]*Item, 0, len(s.items))
	for _, p := range ordered {
		result = append(result, p.item)
	}
	for _, it := range s.items {
		if !placed[it.ID] {
			result = append(result, it)
		}
	}
	s.items = result
}

// UpdateFunc mutates an item in place.
type UpdateFunc func(*Item)

// UpdateItem locates the item with the given id and applies fn, always
// marking it dirty afterwards regardless of which fields fn touched.
// Returns whether the item was found.
func (s *Scene) UpdateItem(id int64, fn UpdateFunc) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, it := range s.items {
		if it.ID == id {
			fn(it)
			it.MarkTransformDirty()
			return true
		}
	}
	return false
}

// VisitFunc is called once per visible item, in scene order, during
// RenderItems.
type VisitFunc func(*Item)

// RenderItems acquires a shared read hold and invokes fn on every visible
// item in current scene order. Increments the render counter.
func (s *Scene) RenderItems(fn VisitFunc) {
	atomic.AddUint64(&s.renderCount, 1)

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, it := range s.items {
		if it.Visible {
			fn(it)
		}
	}
}

// SourceDims maps a source id to its current (width, height).
type SourceDims struct {
	SourceID uint64
	Width    uint32
	Height   uint32
}

// UpdateTransforms acquires an exclusive hold and, for each item whose
// source id appears in dims, recomputes the transform if the item is dirty
// or its source size changed. Items whose source id is absent are left
// untouched.
func (s *Scene) UpdateTransforms(dims []SourceDims) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dimMap := make(map[uint64]SourceDims, len(dims))
	for _, d := range dims {
		dimMap[d.SourceID] = d
	}

	for _, it := range s.items {
		d, ok := dimMap[it.SourceID]
		if !ok {
			continue
		}
		if it.SourceSizeChanged(d.Width, d.Height) {
			it.MarkTransformDirty()
		}
		if it.TransformDirty {
			UpdateItemTransform(it, d.Width, d.Height)
		}
	}
}

// RenderCount returns the number of RenderItems calls observed so far.
func (s *Scene) RenderCount() uint64 {
	return atomic.LoadUint64(&s.renderCount)
}

// GetItemsSnapshot returns a deep copy of the current item sequence.
func (s *Scene) GetItemsSnapshot() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Item, len(s.items))
	for i, it := range s.items {
		out[i] = *it
	}
	return out
}

// FindItem returns a deep copy of the item with the given id, if present.
func (s *Scene) FindItem(id int64) (Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, it := range s.items {
		if it.ID == id {
			return *it, true
		}
	}
	return Item{}, false
}

// Clone returns a new Scene sharing no state with s: items are deep-copied
// and the render counter resets to zero, mirroring the original's clone
// semantics (a clone starts its own render-observability lifetime).
func (s *Scene) Clone() *Scene {
	s.mu.RLock()
	defer s.mu.RUnlock()

	clone := &Scene{
		width:   s.width,
		height:  s.height,
		isGroup: s.isGroup,
		nextID:  s.nextID,
	}
	clone.items = make([]*Item, len(s.items))
	for i, it := range s.items {
		cp := *it
		clone.items[i] = &cp
	}
	return clone
}
