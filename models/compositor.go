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

const (
	LayoutModeGrid      = "grid"
	LayoutModeHighlight = "highlight"
)

// CompositorViewState - the one active layout of the scene compositor
type CompositorViewState struct {
	LayoutMode        string `json:"layout_mode"`
	HighlightedSource string `json:"highlighted_source,omitempty"`
}

// TransformRequest - layout switch towards the compositor
type TransformRequest struct {
	Type         string `json:"type" binding:"required"`
	ActiveSource string `json:"active_source,omitempty"`
}

// SwitchSceneRequest - scene change towards the compositor
type SwitchSceneRequest struct {
	SceneName string `json:"scene_name" binding:"required"`
}
