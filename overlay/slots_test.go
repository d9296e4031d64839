// Copyright 2020 Wearless Tech Inc All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package overlay

import (
	"testing"

	"github.com/ptzrig/ptz-console/models"
)

func strVal(s *string) string {
	if s == nil {
		return "<nil>"
	}
	return *s
}

func TestCameraSlotsWrapAround(t *testing.T) {
	list := []string{"front", "stage", "back"}

	slots := CameraSlots(list, "front")
	if strVal(slots.Prev) != "back" || strVal(slots.Current) != "front" || strVal(slots.Next) != "stage" {
		t.Fatalf("unexpected slots at head: %v %v %v", strVal(slots.Prev), strVal(slots.Current), strVal(slots.Next))
	}

	slots = CameraSlots(list, "back")
	if strVal(slots.Prev) != "stage" || strVal(slots.Next) != "front" {
		t.Fatalf("unexpected slots at tail: %v %v", strVal(slots.Prev), strVal(slots.Next))
	}
}

func TestCameraSlotsSingleCameraHasNoNeighbours(t *testing.T) {
	slots := CameraSlots([]string{"front"}, "front")
	if slots.Prev != nil || slots.Next != nil {
		t.Fatal("single camera must not wrap onto itself")
	}
	if strVal(slots.Current) != "front" {
		t.Fatalf("expected current front, got %v", strVal(slots.Current))
	}
}

func TestCameraSlotsEmptyAndUnknown(t *testing.T) {
	if s := CameraSlots(nil, "front"); s.Prev != nil || s.Current != nil || s.Next != nil {
		t.Fatal("empty list must yield empty slots")
	}
	if s := CameraSlots([]string{"front"}, "gone"); s.Current != nil {
		t.Fatal("unknown current must yield empty slots")
	}
}

func testPresets() []models.PresetDescriptor {
	return []models.PresetDescriptor{
		{Name: "wide", Token: "p1"},
		{Name: "podium", Token: "p2"},
		{Name: "choir", Token: "p3"},
	}
}

func TestPresetSlotsCircular(t *testing.T) {
	token := "p1"
	slots := PresetSlots(testPresets(), &token)
	if slots.Prev.Token != "p3" || slots.Current.Token != "p1" || slots.Next.Token != "p2" {
		t.Fatalf("unexpected preset slots: %+v", slots)
	}
}

func TestPresetSlotsNoSelectionExposesSeeds(t *testing.T) {
	slots := PresetSlots(testPresets(), nil)
	if slots.Current != nil {
		t.Fatal("no selection must leave current empty")
	}
	if slots.Next == nil || slots.Next.Token != "p1" {
		t.Fatal("forward seed must be the first preset")
	}
	if slots.Prev == nil || slots.Prev.Token != "p3" {
		t.Fatal("backward seed must be the last preset")
	}
}

func TestPresetSlotsSinglePreset(t *testing.T) {
	token := "p1"
	slots := PresetSlots(testPresets()[:1], &token)
	if slots.Prev != nil || slots.Next != nil {
		t.Fatal("single preset must not wrap onto itself")
	}
	if slots.Current == nil || slots.Current.Token != "p1" {
		t.Fatalf("expected current p1, got %+v", slots.Current)
	}
}

func TestCameraSlotCacheReusesUnchangedInput(t *testing.T) {
	var cache cameraSlotCache
	list := []string{"front", "stage"}

	first := cache.get(list, "front")
	second := cache.get([]string{"front", "stage"}, "front")
	if first.Current != second.Current {
		t.Fatal("unchanged inputs must return the memoized value")
	}

	third := cache.get(list, "stage")
	if strVal(third.Current) != "stage" {
		t.Fatal("changed current must recompute")
	}
}

func TestPresetSlotCacheRecomputesOnTokenChange(t *testing.T) {
	var cache presetSlotCache
	presets := testPresets()

	first := cache.get(presets, nil)
	if first.Next.Token != "p1" {
		t.Fatalf("expected seed p1, got %v", first.Next.Token)
	}

	token := "p2"
	second := cache.get(presets, &token)
	if second.Current == nil || second.Current.Token != "p2" {
		t.Fatal("token change must recompute slots")
	}
}
