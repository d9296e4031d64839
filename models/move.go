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

// Movement directions accepted by the rig
const (
	DirectionUp    = "up"
	DirectionDown  = "down"
	DirectionLeft  = "left"
	DirectionRight = "right"
	DirectionIn    = "in"  // zoom in
	DirectionOut   = "out" // zoom out
)

// ValidDirection reports whether the rig understands the direction keyword.
func ValidDirection(direction string) bool {
	switch direction {
	case DirectionUp, DirectionDown, DirectionLeft, DirectionRight, DirectionIn, DirectionOut:
		return true
	}
	return false
}

// MoveRequest - one discrete move command from a client
type MoveRequest struct {
	Direction      string  `json:"direction" binding:"required"`
	VelocityFactor float64 `json:"velocity_factor,omitempty"`
}

// PressRequest - press/release of a directional control from a client
type PressRequest struct {
	Direction string `json:"direction" binding:"required"`
}

// GotoPresetRequest - jump to a stored preset
type GotoPresetRequest struct {
	PresetToken string `json:"presetToken" binding:"required"`
}

// NightModeRequest - toggle camera night mode
type NightModeRequest struct {
	Enable bool `json:"enable"`
}
