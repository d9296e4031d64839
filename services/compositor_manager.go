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

	g "github.com/ptzrig/ptz-console/globals"
	"github.com/ptzrig/ptz-console/models"
)

// CompositorManager - tracks and mutates the remote compositor's single
// active layout. Transform failures get the distinguished "connection lost"
// message because retrying the same call blindly would fail identically;
// the operator has to use the reconnect action.
type CompositorManager struct {
	obs      OBSApi
	notifier *NotificationManager
	settings *SettingsManager

	mu    sync.Mutex
	state models.CompositorViewState
}

func NewCompositorManager(obs OBSApi, notifier *NotificationManager, settings *SettingsManager) *CompositorManager {
	return &CompositorManager{
		obs:      obs,
		notifier: notifier,
		settings: settings,
		state:    models.CompositorViewState{LayoutMode: models.LayoutModeGrid},
	}
}

// State returns the tracked layout.
func (cm *CompositorManager) State() models.CompositorViewState {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	return cm.state
}

// Refresh seeds the tracked layout from the compositor. Failures only log;
// the tracked state keeps its previous value.
func (cm *CompositorManager) Refresh(ctx context.Context) {
	state, err := cm.obs.CurrentTransformation(ctx)
	if err != nil {
		g.Log.Warn("failed to read current compositor transformation", err)
		return
	}
	cm.mu.Lock()
	cm.state = *state
	cm.mu.Unlock()
}

// SwitchView switches the compositor between grid and single-camera
// highlight. A highlight for the already highlighted camera skips the
// remote call. Grid clears the highlight.
func (cm *CompositorManager) SwitchView(ctx context.Context, mode, activeCamera string) error {
	if mode == models.LayoutModeHighlight && activeCamera == "" {
		return models.ErrActiveCameraRequired
	}

	cm.mu.Lock()
	if cm.state.LayoutMode == mode && cm.state.HighlightedSource == activeCamera {
		cm.mu.Unlock()
		return nil
	}
	cm.mu.Unlock()

	if err := cm.obs.Transform(ctx, mode, activeCamera); err != nil {
		g.Log.Error("compositor transform failed", mode, activeCamera, err)
		cm.notifier.ConnectionLost("Lost connection to the video compositor. Use the reconnect action to restore it.")
		return err
	}

	cm.mu.Lock()
	cm.state.LayoutMode = mode
	if mode == models.LayoutModeGrid {
		cm.state.HighlightedSource = ""
	} else {
		cm.state.HighlightedSource = activeCamera
	}
	cm.mu.Unlock()

	if mode == models.LayoutModeHighlight {
		cm.notifier.Success("Highlighting " + cm.cameraLabel(activeCamera))
	} else {
		cm.notifier.Success("Switched to grid view")
	}
	return nil
}

// SwitchScene is a thin pass-through to the compositor scene switcher.
func (cm *CompositorManager) SwitchScene(ctx context.Context, name string) error {
	if err := cm.obs.SwitchScene(ctx, name); err != nil {
		g.Log.Error("scene switch failed", name, err)
		cm.notifier.Error("Failed to switch scene to " + name)
		return err
	}
	cm.notifier.Success("Switched scene to " + name)
	return nil
}

// Reconnect asks the compositor to re-establish its connection. Failures are
// not retried automatically; the operator triggers it again.
func (cm *CompositorManager) Reconnect(ctx context.Context) error {
	if err := cm.obs.Reconnect(ctx); err != nil {
		g.Log.Error("compositor reconnect failed", err)
		cm.notifier.Error("Reconnect failed. Check that the compositor is running.")
		return err
	}
	cm.notifier.Success("Compositor reconnected")
	return nil
}

func (cm *CompositorManager) cameraLabel(nickname string) string {
	if cm.settings != nil {
		return cm.settings.DisplayCameraName(nickname)
	}
	return nickname
}
