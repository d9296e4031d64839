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

// Datastore key prefixes
const (
	PrefixSettingsKey  = "/settings/"
	PrefixCommandAudit = "/commandaudit/"

	SettingDefaultKey = "default"
)

// Settings - operator-facing console settings kept in the local datastore
type Settings struct {
	Name           string            `json:"name"`                      // name of the setting
	SelectedCamera string            `json:"selected_camera,omitempty"` // last committed camera selection
	CameraNames    map[string]string `json:"camera_names,omitempty"`    // nickname -> operator-friendly label
	PresetNames    map[string]string `json:"preset_names,omitempty"`    // raw preset name -> operator-friendly label
	Created        int64             `json:"created,omitempty"`
	Modified       int64             `json:"modified,omitempty"`
}

// CommandAuditEntry - one issued PTZ command, stored for operator review
type CommandAuditEntry struct {
	ID             string  `json:"id"`
	Camera         string  `json:"camera,omitempty"`
	Command        string  `json:"command"` // move | continuous_move | stop | goto_preset | night_mode
	Direction      string  `json:"direction,omitempty"`
	PresetToken    string  `json:"preset_token,omitempty"`
	VelocityFactor float64 `json:"velocity_factor,omitempty"`
	Created        int64   `json:"created"` // unix epoch in ms
}
