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

package models

// Overlay lifecycle phases
const (
	OverlayPhaseClosed       = "closed"
	OverlayPhaseInitializing = "initializing"
	OverlayPhaseOpen         = "open"
)

// Overlay interaction modes while open
const (
	OverlayModeNormal = "normal" // camera/preset carousel navigation
	OverlayModeMove   = "move"   // discrete/continuous PTZ control
)

// Indicator tones, so the active mode is legible without a persistent label
const (
	IndicatorTonePrimary = "primary"
	IndicatorToneWarning = "warning"
)

// Pointer event types sent by thin clients
const (
	PointerDown   = "down"
	PointerMove   = "move"
	PointerUp     = "up"
	PointerCancel = "cancel" // pointer left the surface; treated like up for movement
)

// PointerEvent - one raw touch/mouse sample from a client
type PointerEvent struct {
	Type        string  `json:"type" binding:"required"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	TimestampMs int64   `json:"timestamp_ms,omitempty"`
}

// SwipeIndicator - transient directional feedback flash
type SwipeIndicator struct {
	Direction string `json:"direction,omitempty"`
	Visible   bool   `json:"visible"`
	Tone      string `json:"tone,omitempty"`
}

// CameraSlots - {previous, current, next} camera nicknames for carousel
// rendering. Nil entries mean "nothing to show on that side".
type CameraSlots struct {
	Prev    *string `json:"prev"`
	Current *string `json:"current"`
	Next    *string `json:"next"`
}

// PresetSlots - {previous, current, next} presets for carousel rendering
type PresetSlots struct {
	Prev    *PresetDescriptor `json:"prev"`
	Current *PresetDescriptor `json:"current"`
	Next    *PresetDescriptor `json:"next"`
}

// OverlaySnapshot - complete displayable overlay state pushed to clients
type OverlaySnapshot struct {
	Phase         string         `json:"phase"`
	Mode          string         `json:"mode"`
	OverlayCamera string         `json:"overlay_camera,omitempty"`
	CameraLabel   string         `json:"camera_label,omitempty"`
	CameraSlots   CameraSlots    `json:"camera_slots"`
	PresetSlots   PresetSlots    `json:"preset_slots"`
	Indicator     SwipeIndicator `json:"indicator"`
}
