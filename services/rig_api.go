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

package services

import (
	"context"

	"github.com/ptzrig/ptz-console/models"
)

// PTZApi - the slice of the rig gateway consumed by the camera store and
// the movement layer. Satisfied by gateway.Client.
type PTZApi interface {
	Cameras(ctx context.Context) ([]models.CameraDescriptor, error)
	Status(ctx context.Context, nickname string) (*models.PTZStatus, error)
	Presets(ctx context.Context, nickname string) ([]models.PresetDescriptor, error)
	GotoPreset(ctx context.Context, nickname, presetToken string) error
	Move(ctx context.Context, nickname, direction string, velocityFactor float64) error
	ContinuousMove(ctx context.Context, nickname, direction string, speed float64) error
	StopMove(ctx context.Context, nickname string) error
	Imaging(ctx context.Context, nickname string) (models.ImagingSettings, error)
	NightMode(ctx context.Context, nickname string, enable bool) error
}

// OBSApi - the slice of the rig gateway consumed by the compositor
// coordinator. Satisfied by gateway.Client.
type OBSApi interface {
	Transform(ctx context.Context, layoutType, activeSource string) error
	CurrentTransformation(ctx context.Context) (*models.CompositorViewState, error)
	SwitchScene(ctx context.Context, sceneName string) error
	Reconnect(ctx context.Context) error
}
