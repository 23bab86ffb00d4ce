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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSceneAddItemIDsMonotonic(t *testing.T) {
	s := NewScene(1920, 1080)

	var ids []int64
	for i := 0; i < 5; i++ {
		ids = append(ids, s.AddItem(NewItem(0, uint64(i))))
	}

	for i := 1; i < len(ids); i++ {
		require.Greater(t, ids[i], ids[i-1])
	}
	require.Equal(t, 5, s.ItemCount())
}

func TestSceneRemoveItem(t *testing.T) {
	s := NewScene(100, 100)
	id := s.AddItem(NewItem(0, 1))

	require.True(t, s.RemoveItem(id))
	require.Equal(t, 0, s.ItemCount())
	require.False(t, s.RemoveItem(id))
}

func TestSceneRenderItemsVisibilityFilter(t *testing.T) {
	// S1: two items, hide B, only A is visited.
	s := NewScene(1920, 1080)
	idA := s.AddItem(NewItem(0, 100))
	idB := s.AddItem(NewItem(0, 200))

	var visited []uint64
	s.RenderItems(func(it *Item) { visited = append(visited, it.SourceID) })
	require.Equal(t, []uint64{100, 200}, visited)

	s.UpdateItem(idB, func(it *Item) { it.Visible = false })

	visited = nil
	s.RenderItems(func(it *Item) { visited = append(visited, it.SourceID) })
	require.Equal(t, []uint64{100}, visited)
	_ = idA
}

func TestSceneUpdateItemMarksDirtyRegardlessOfField(t *testing.T) {
	s := NewScene(100, 100)
	id := s.AddItem(NewItem(0, 1))
	s.UpdateTransforms([]SourceDims{{SourceID: 1, Width: 100, Height: 100}})

	found := s.UpdateItem(id, func(it *Item) { it.Selected = true })
	require.True(t, found)

	item, ok := s.FindItem(id)
	require.True(t, ok)
	require.True(t, item.TransformDirty)
}

func TestSceneUpdateTransformsSkipsAbsentSources(t *testing.T) {
	s := NewScene(100, 100)
	id := s.AddItem(NewItem(0, 1))

	s.UpdateTransforms([]SourceDims{{SourceID: 999, Width: 50, Height: 50}})

	item, _ := s.FindItem(id)
	require.True(t, item.TransformDirty)
	require.Equal(t, uint32(0), item.LastWidth)
}

func TestSceneUpdateTransformsStableAcrossRepeatedCalls(t *testing.T) {
	// P5: stable matrices across repeated update_transforms with same dims.
	s := NewScene(100, 100)
	id := s.AddItem(NewItem(0, 1))
	item := NewItem(id, 1)
	item.Pos = Vec2{X: 100, Y: 200}
	item.Scale = Vec2{X: 2, Y: 2}
	s.UpdateItem(id, func(it *Item) {
		it.Pos = Vec2{X: 100, Y: 200}
		it.Scale = Vec2{X: 2, Y: 2}
	})

	dims := []SourceDims{{SourceID: 1, Width: 1920, Height: 1080}}
	s.UpdateTransforms(dims)
	first, _ := s.FindItem(id)

	s.UpdateTransforms(dims)
	second, _ := s.FindItem(id)

	require.Equal(t, first.DrawTransform, second.DrawTransform)
	require.False(t, second.TransformDirty)
}

func TestSceneMoveItem(t *testing.T) {
	s := NewScene(100, 100)
	idA := s.AddItem(NewItem(0, 1))
	idB := s.AddItem(NewItem(0, 2))
	s.AddItem(NewItem(0, 3))

	require.True(t, s.MoveItem(idB, 0))

	snap := s.GetItemsSnapshot()
	require.Equal(t, idB, snap[0].ID)
	require.Equal(t, idA, snap[1].ID)

	require.False(t, s.MoveItem(idA, 99))
}

func TestSceneReorderItemsAppendsLeftoversInOriginalOrder(t *testing.T) {
	s := NewScene(100, 100)
	idA := s.AddItem(NewItem(0, 1))
	idB := s.AddItem(NewItem(0, 2))
	idC := s.AddItem(NewItem(0, 3))

	s.ReorderItems([]ReorderPair{{ID: idC, Index: 0}})

	snap := s.GetItemsSnapshot()
	require.Equal(t, idC, snap[0].ID)
	require.Equal(t, idA, snap[1].ID)
	require.Equal(t, idB, snap[2].ID)
}

func TestSceneCloneResetsRenderCount(t *testing.T) {
	s := NewScene(100, 100)
	s.AddItem(NewItem(0, 1))
	s.RenderItems(func(*Item) {})
	require.Equal(t, uint64(1), s.RenderCount())

	clone := s.Clone()
	require.Equal(t, uint64(0), clone.RenderCount())
	require.Equal(t, 1, clone.ItemCount())
}
