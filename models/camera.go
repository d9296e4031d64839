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

import "encoding/json"

const (
	CameraStatusOnline  = "online"
	CameraStatusOffline = "offline"
)

// CameraDescriptor - one networked PTZ camera as reported by the rig roster
type CameraDescriptor struct {
	Nickname string `json:"nickname"`        // unique camera identifier
	Host     string `json:"host,omitempty"`  // camera host/IP
	Port     int    `json:"port,omitempty"`  // camera control port
	Status   string `json:"status"`          // online | offline
	Error    string `json:"error,omitempty"` // last connection error if offline
}

// PanTilt - normalized pan/tilt coordinates
type PanTilt struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ZoomVector - normalized zoom position
type ZoomVector struct {
	X float64 `json:"x"`
}

// PTZPosition - combined pan/tilt/zoom position (ONVIF field casing on the wire)
type PTZPosition struct {
	PanTilt *PanTilt    `json:"PanTilt,omitempty"`
	Zoom    *ZoomVector `json:"Zoom,omitempty"`
}

// PTZStatus - current camera position plus whatever movement limits the rig reports.
// Limits are passed through opaque, the console never interprets them.
type PTZStatus struct {
	Position PTZPosition     `json:"PTZPosition"`
	Limits   json.RawMessage `json:"limits,omitempty"`
}

// PresetDescriptor - a named, remembered PTZ position
type PresetDescriptor struct {
	Name        string       `json:"Name"`
	Token       string       `json:"Token"`
	PTZPosition *PTZPosition `json:"PTZPosition,omitempty"`
}

// HasPosition reports whether the preset carries an addressable pan/tilt position.
// Presets without one are filtered out at ingestion and never navigable.
func (p *PresetDescriptor) HasPosition() bool {
	return p.PTZPosition != nil && p.PTZPosition.PanTilt != nil
}

// CameraRuntimeState - cached per-camera state fanned out to subscribers.
// SelectedPresetToken, when set, always references a token present in Presets.
type CameraRuntimeState struct {
	Presets             []PresetDescriptor `json:"presets"`
	SelectedPresetToken *string            `json:"selected_preset_token,omitempty"`
	PTZStatus           *PTZStatus         `json:"ptz_status,omitempty"`
	IsLoading           bool               `json:"is_loading"`
	Error               string             `json:"error,omitempty"`
}

// ImagingSettings - camera imaging values passed through from the rig
type ImagingSettings map[string]interface{}
