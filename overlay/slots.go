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

import "github.com/ptzrig/ptz-console/models"

// CameraSlots computes the {prev, current, next} carousel triple over the
// online camera list with circular wraparound. A single-element list shows
// no self-wrap neighbours; an empty list yields all nil.
func CameraSlots(list []string, current string) models.CameraSlots {
	n := len(list)
	if n == 0 {
		return models.CameraSlots{}
	}
	idx := indexOfString(list, current)
	if idx < 0 {
		return models.CameraSlots{}
	}
	cur := list[idx]
	if n == 1 {
		return models.CameraSlots{Current: &cur}
	}
	prev := list[(idx-1+n)%n]
	next := list[(idx+1)%n]
	return models.CameraSlots{Prev: &prev, Current: &cur, Next: &next}
}

// PresetSlots computes the preset carousel triple. With no selected token
// the seeds are exposed instead: next = first preset (what a forward swipe
// would select), prev = last preset (what a backward swipe would select).
func PresetSlots(presets []models.PresetDescriptor, token *string) models.PresetSlots {
	n := len(presets)
	if n == 0 {
		return models.PresetSlots{}
	}
	if token == nil {
		first := presets[0]
		last := presets[n-1]
		return models.PresetSlots{Prev: &last, Next: &first}
	}
	idx := indexOfPreset(presets, *token)
	if idx < 0 {
		return models.PresetSlots{}
	}
	cur := presets[idx]
	if n == 1 {
		return models.PresetSlots{Current: &cur}
	}
	prev := presets[(idx-1+n)%n]
	next := presets[(idx+1)%n]
	return models.PresetSlots{Prev: &prev, Current: &cur, Next: &next}
}

func indexOfString(list []string, v string) int {
	for i, s := range list {
		if s == v {
			return i
		}
	}
	return -1
}

func indexOfPreset(presets []models.PresetDescriptor, token string) int {
	for i, p := range presets {
		if p.Token == token {
			return i
		}
	}
	return -1
}

// cameraSlotCache memoizes CameraSlots so unrelated state changes keep the
// previously computed value.
type cameraSlotCache struct {
	list    []string
	current string
	slots   models.CameraSlots
	valid   bool
}

func (c *cameraSlotCache) get(list []string, current string) models.CameraSlots {
	if c.valid && c.current == current && equalStrings(c.list, list) {
		return c.slots
	}
	c.list = append([]string(nil), list...)
	c.current = current
	c.slots = CameraSlots(list, current)
	c.valid = true
	return c.slots
}

// presetSlotCache memoizes PresetSlots keyed on the preset tokens and the
// selected token.
type presetSlotCache struct {
	tokens []string
	token  string
	hasTok bool
	slots  models.PresetSlots
	valid  bool
}

func (c *presetSlotCache) get(presets []models.PresetDescriptor, token *string) models.PresetSlots {
	tokens := make([]string, len(presets))
	for i, p := range presets {
		tokens[i] = p.Token
	}
	sel := ""
	hasTok := token != nil
	if hasTok {
		sel = *token
	}
	if c.valid && c.hasTok == hasTok && c.token == sel && equalStrings(c.tokens, tokens) {
		return c.slots
	}
	c.tokens = tokens
	c.token = sel
	c.hasTok = hasTok
	c.slots = PresetSlots(presets, token)
	c.valid = true
	return c.slots
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
