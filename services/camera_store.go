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

	g "github.com/ptzrig/ptz-console/globals"
	"github.com/ptzrig/ptz-console/models"
)

// CameraSubscription receives a copy of a camera's runtime state on every change.
type CameraSubscription func(models.CameraRuntimeState)

// CameraStore - single source of truth for the camera roster, the per-camera
// cached runtime state and the continuous-move flags. All mutation funnels
// through one locked update path; subscribers are notified with copies
// outside the lock.
type CameraStore struct {
	ptz      PTZApi
	notifier *NotificationManager
	settings *SettingsManager

	mu            sync.Mutex
	cameras       []models.CameraDescriptor
	selected      string
	states        map[string]*models.CameraRuntimeState
	subs          map[string]map[int]CameraSubscription
	nextSubID     int
	loading       map[string]bool // per-camera in-flight guard
	rosterLoading bool
	rosterLoaded  bool
	moving        map[string]time.Time // continuous move start times per camera
	onSelect      func(nickname string)
}

func NewCameraStore(ptz PTZApi, notifier *NotificationManager, settings *SettingsManager) *CameraStore {
	return &CameraStore{
		ptz:      ptz,
		notifier: notifier,
		settings: settings,
		states:   make(map[string]*models.CameraRuntimeState),
		subs:     make(map[string]map[int]CameraSubscription),
		loading:  make(map[string]bool),
		moving:   make(map[string]time.Time),
	}
}

// SetSelectionListener registers the hook invoked after the globally selected
// camera changes (wired to the compositor highlight switch).
func (cs *CameraStore) SetSelectionListener(fn func(nickname string)) {
	cs.mu.Lock()
	cs.onSelect = fn
	cs.mu.Unlock()
}

// LoadRoster fetches the camera list once. Repeated calls while a fetch is
// running or after completion are no-ops. A failed fetch surfaces one error
// notification and settles on an empty roster; an empty online set means
// "no cameras available", never a crash.
func (cs *CameraStore) LoadRoster(ctx context.Context) {
	cs.mu.Lock()
	if cs.rosterLoaded || cs.rosterLoading {
		cs.mu.Unlock()
		return
	}
	cs.rosterLoading = true
	cs.mu.Unlock()

	cameras, err := cs.ptz.Cameras(ctx)
	if err != nil {
		g.Log.Error("failed to load camera roster", err)
		cs.notifier.Error("Failed to load camera list")
		cameras = nil
	}

	cs.mu.Lock()
	cs.cameras = cameras
	cs.rosterLoading = false
	cs.rosterLoaded = true
	autoSelect := ""
	if cs.selected == "" {
		for _, cam := range cameras {
			if cam.Status == models.CameraStatusOnline {
				autoSelect = cam.Nickname
				break
			}
		}
	}
	cs.mu.Unlock()

	if autoSelect != "" {
		cs.SelectCamera(autoSelect)
	}
}

// RefreshRoster re-fetches the roster even when already loaded, keeping the
// current selection. Used by the status listener and the scheduled refresh.
func (cs *CameraStore) RefreshRoster(ctx context.Context) {
	cs.mu.Lock()
	if cs.rosterLoading {
		cs.mu.Unlock()
		return
	}
	cs.rosterLoaded = false
	cs.mu.Unlock()
	cs.LoadRoster(ctx)
}

func (cs *CameraStore) RosterLoaded() bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.rosterLoaded
}

func (cs *CameraStore) RosterLoading() bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.rosterLoading
}

// Cameras returns a copy of the full roster, offline cameras included.
func (cs *CameraStore) Cameras() []models.CameraDescriptor {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	out := make([]models.CameraDescriptor, len(cs.cameras))
	copy(out, cs.cameras)
	return out
}

// OnlineCameras returns the navigable subset of the roster.
func (cs *CameraStore) OnlineCameras() []models.CameraDescriptor {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	out := make([]models.CameraDescriptor, 0, len(cs.cameras))
	for _, cam := range cs.cameras {
		if cam.Status == models.CameraStatusOnline {
			out = append(out, cam)
		}
	}
	return out
}

// OnlineNicknames returns online camera nicknames in roster order.
func (cs *CameraStore) OnlineNicknames() []string {
	online := cs.OnlineCameras()
	out := make([]string, 0, len(online))
	for _, cam := range online {
		out = append(out, cam.Nickname)
	}
	return out
}

func (cs *CameraStore) SelectedCamera() string {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.selected
}

// SelectCamera commits the globally selected camera, persists it and invokes
// the selection listener.
func (cs *CameraStore) SelectCamera(nickname string) {
	cs.mu.Lock()
	cs.selected = nickname
	onSelect := cs.onSelect
	cs.mu.Unlock()

	if cs.settings != nil {
		if err := cs.settings.SetSelectedCamera(nickname); err != nil {
			g.Log.Warn("failed to persist selected camera", nickname, err)
		}
	}
	if onSelect != nil {
		onSelect(nickname)
	}
}

// State returns a copy of the last-known runtime state, or nil when the
// camera was never loaded.
func (cs *CameraStore) State(nickname string) *models.CameraRuntimeState {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	st, ok := cs.states[nickname]
	if !ok {
		return nil
	}
	cp := copyState(st)
	return &cp
}

// SubscribeToCamera registers a callback for one camera and immediately
// replays the last-known state so a subscriber never misses the initial
// render. The returned function unsubscribes.
func (cs *CameraStore) SubscribeToCamera(nickname string, cb CameraSubscription) func() {
	cs.mu.Lock()
	id := cs.nextSubID
	cs.nextSubID++
	if cs.subs[nickname] == nil {
		cs.subs[nickname] = make(map[int]CameraSubscription)
	}
	cs.subs[nickname][id] = cb
	var replay *models.CameraRuntimeState
	if st, ok := cs.states[nickname]; ok {
		cp := copyState(st)
		replay = &cp
	}
	cs.mu.Unlock()

	if replay != nil {
		cb(*replay)
	}
	return func() {
		cs.mu.Lock()
		defer cs.mu.Unlock()
		if m, ok := cs.subs[nickname]; ok {
			delete(m, id)
		}
	}
}

// LoadCameraData fetches PTZ status then presets for one camera. Concurrent
// calls for the same nickname collapse into the running one. Presets without
// a position are dropped; when the current position exactly matches a preset
// the preset is auto-selected.
func (cs *CameraStore) LoadCameraData(ctx context.Context, nickname string) error {
	cs.mu.Lock()
	if cs.loading[nickname] {
		cs.mu.Unlock()
		return nil
	}
	cs.loading[nickname] = true
	cs.mu.Unlock()

	cs.publishUpdate(nickname, func(st *models.CameraRuntimeState) {
		st.IsLoading = true
		st.Error = ""
	})

	status, err := cs.ptz.Status(ctx, nickname)
	var presets []models.PresetDescriptor
	if err == nil {
		presets, err = cs.ptz.Presets(ctx, nickname)
	}

	cs.mu.Lock()
	delete(cs.loading, nickname)
	cs.mu.Unlock()

	if err != nil {
		g.Log.Error("failed to load camera data", nickname, err)
		if err == models.ErrCameraOffline || err == models.ErrNotFound {
			cs.notifier.Error("Camera is offline or unavailable")
		} else {
			cs.notifier.Error("Failed to load camera data for " + nickname)
		}
		cs.publishUpdate(nickname, func(st *models.CameraRuntimeState) {
			st.Presets = nil
			st.SelectedPresetToken = nil
			st.PTZStatus = nil
			st.IsLoading = false
			st.Error = err.Error()
		})
		return err
	}

	navigable := make([]models.PresetDescriptor, 0, len(presets))
	for _, p := range presets {
		if p.HasPosition() {
			navigable = append(navigable, p)
		}
	}
	selectedToken := matchPresetToken(navigable, status)

	cs.publishUpdate(nickname, func(st *models.CameraRuntimeState) {
		st.Presets = navigable
		st.SelectedPresetToken = selectedToken
		st.PTZStatus = status
		st.IsLoading = false
		st.Error = ""
	})
	return nil
}

// SetSelectedPreset updates the cached preset selection for a camera. A
// non-nil token not present in the camera's preset list is rejected to nil,
// keeping the selection invariant intact.
func (cs *CameraStore) SetSelectedPreset(nickname string, token *string) {
	cs.publishUpdate(nickname, func(st *models.CameraRuntimeState) {
		if token == nil {
			st.SelectedPresetToken = nil
			return
		}
		for _, p := range st.Presets {
			if p.Token == *token {
				t := *token
				st.SelectedPresetToken = &t
				return
			}
		}
		st.SelectedPresetToken = nil
	})
}

// TryBeginContinuous flips the continuous-move flag for a camera. Returns
// false when a continuous move is already running; the caller must then
// treat the start as a no-op.
func (cs *CameraStore) TryBeginContinuous(nickname string) bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if _, ok := cs.moving[nickname]; ok {
		return false
	}
	cs.moving[nickname] = time.Now()
	return true
}

// EndContinuous clears the continuous-move flag. Returns whether the camera
// was considered moving. The flag is the authority regardless of how the
// start/stop responses interleave.
func (cs *CameraStore) EndContinuous(nickname string) bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if _, ok := cs.moving[nickname]; !ok {
		return false
	}
	delete(cs.moving, nickname)
	return true
}

func (cs *CameraStore) IsMoving(nickname string) bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	_, ok := cs.moving[nickname]
	return ok
}

// StaleMoves returns cameras whose continuous move started more than maxAge
// ago. Used by the scheduled reconciliation to catch stop commands that were
// lost server-side.
func (cs *CameraStore) StaleMoves(maxAge time.Duration) []string {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	var out []string
	cutoff := time.Now().Add(-maxAge)
	for nickname, started := range cs.moving {
		if started.Before(cutoff) {
			out = append(out, nickname)
		}
	}
	return out
}

// publishUpdate is the single writer path: it mutates the camera's state
// under the lock, snapshots it and notifies subscribers with the copy.
func (cs *CameraStore) publishUpdate(nickname string, mutate func(*models.CameraRuntimeState)) {
	cs.mu.Lock()
	st, ok := cs.states[nickname]
	if !ok {
		st = &models.CameraRuntimeState{}
		cs.states[nickname] = st
	}
	mutate(st)
	snapshot := copyState(st)
	cbs := make([]CameraSubscription, 0, len(cs.subs[nickname]))
	for _, cb := range cs.subs[nickname] {
		cbs = append(cbs, cb)
	}
	cs.mu.Unlock()

	for _, cb := range cbs {
		cb(snapshot)
	}
}

func copyState(st *models.CameraRuntimeState) models.CameraRuntimeState {
	cp := *st
	if st.Presets != nil {
		cp.Presets = make([]models.PresetDescriptor, len(st.Presets))
		copy(cp.Presets, st.Presets)
	}
	if st.SelectedPresetToken != nil {
		t := *st.SelectedPresetToken
		cp.SelectedPresetToken = &t
	}
	return cp
}

// matchPresetToken finds the preset whose stored pan/tilt exactly equals the
// current position. The comparison is deliberately exact, not tolerance
// based, mirroring how the rig reports preset positions.
func matchPresetToken(presets []models.PresetDescriptor, status *models.PTZStatus) *string {
	if status == nil || status.Position.PanTilt == nil {
		return nil
	}
	pos := status.Position.PanTilt
	for _, p := range presets {
		pt := p.PTZPosition.PanTilt
		if pt.X == pos.X && pt.Y == pos.Y {
			token := p.Token
			return &token
		}
	}
	return nil
}
