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
	"sync"
	"time"

	"github.com/ptzrig/ptz-console/models"
)

// fakePTZ - scriptable in-memory rig for camera and movement tests
type fakePTZ struct {
	mu sync.Mutex

	cameras    []models.CameraDescriptor
	camerasErr error
	status     map[string]*models.PTZStatus
	statusErr  error
	presets    map[string][]models.PresetDescriptor
	presetsErr error

	moveErr  error
	contErr  error
	stopErr  error
	gotoErr  error
	nightErr error

	contDelay  time.Duration // simulated network latency on continuous start
	statusHook func()        // runs at the start of Status, before the lock

	statusCalls  int
	presetsCalls int
	moves        []string // nickname/direction
	contMoves    []string
	stops        []string
	gotoCalls    []string
	nightModes   []string // nickname/on|off
}

func newFakePTZ() *fakePTZ {
	return &fakePTZ{
		status:  make(map[string]*models.PTZStatus),
		presets: make(map[string][]models.PresetDescriptor),
	}
}

func (f *fakePTZ) Cameras(ctx context.Context) ([]models.CameraDescriptor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.camerasErr != nil {
		return nil, f.camerasErr
	}
	out := make([]models.CameraDescriptor, len(f.cameras))
	copy(out, f.cameras)
	return out, nil
}

func (f *fakePTZ) Status(ctx context.Context, nickname string) (*models.PTZStatus, error) {
	if f.statusHook != nil {
		f.statusHook()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusCalls++
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	if st, ok := f.status[nickname]; ok {
		cp := *st
		return &cp, nil
	}
	return &models.PTZStatus{}, nil
}

func (f *fakePTZ) Presets(ctx context.Context, nickname string) ([]models.PresetDescriptor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.presetsCalls++
	if f.presetsErr != nil {
		return nil, f.presetsErr
	}
	out := make([]models.PresetDescriptor, len(f.presets[nickname]))
	copy(out, f.presets[nickname])
	return out, nil
}

func (f *fakePTZ) GotoPreset(ctx context.Context, nickname, presetToken string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.gotoErr != nil {
		return f.gotoErr
	}
	f.gotoCalls = append(f.gotoCalls, nickname+"/"+presetToken)
	return nil
}

func (f *fakePTZ) Move(ctx context.Context, nickname, direction string, velocityFactor float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.moveErr != nil {
		return f.moveErr
	}
	f.moves = append(f.moves, nickname+"/"+direction)
	return nil
}

func (f *fakePTZ) ContinuousMove(ctx context.Context, nickname, direction string, speed float64) error {
	f.mu.Lock()
	delay := f.contDelay
	f.mu.Unlock()
	if delay > 0 {
		time.Sleep(delay)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.contErr != nil {
		return f.contErr
	}
	f.contMoves = append(f.contMoves, nickname+"/"+direction)
	return nil
}

func (f *fakePTZ) StopMove(ctx context.Context, nickname string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stopErr != nil {
		return f.stopErr
	}
	f.stops = append(f.stops, nickname)
	return nil
}

func (f *fakePTZ) Imaging(ctx context.Context, nickname string) (models.ImagingSettings, error) {
	return models.ImagingSettings{"ir_cut_filter": "auto"}, nil
}

func (f *fakePTZ) NightMode(ctx context.Context, nickname string, enable bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.nightErr != nil {
		return f.nightErr
	}
	mode := "off"
	if enable {
		mode = "on"
	}
	f.nightModes = append(f.nightModes, nickname+"/"+mode)
	return nil
}

func (f *fakePTZ) moveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.moves)
}

func (f *fakePTZ) statusCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.statusCalls
}

func (f *fakePTZ) presetsCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.presetsCalls
}

func (f *fakePTZ) contCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.contMoves)
}

func (f *fakePTZ) stopCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.stops)
}

// fakeOBS - scriptable compositor for view switch tests
type fakeOBS struct {
	mu sync.Mutex

	transformErr error
	current      *models.CompositorViewState

	transforms []string // type/active_source
	scenes     []string
	reconnects int
}

func (f *fakeOBS) Transform(ctx context.Context, layoutType, activeSource string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.transformErr != nil {
		return f.transformErr
	}
	f.transforms = append(f.transforms, layoutType+"/"+activeSource)
	return nil
}

func (f *fakeOBS) CurrentTransformation(ctx context.Context) (*models.CompositorViewState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.current == nil {
		return &models.CompositorViewState{LayoutMode: models.LayoutModeGrid}, nil
	}
	cp := *f.current
	return &cp, nil
}

func (f *fakeOBS) SwitchScene(ctx context.Context, sceneName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scenes = append(f.scenes, sceneName)
	return nil
}

func (f *fakeOBS) Reconnect(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reconnects++
	return nil
}

func (f *fakeOBS) transformCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.transforms)
}
