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

const (
	// DefaultHoldThreshold - press duration after which a press becomes a
	// continuous move instead of a discrete tap
	DefaultHoldThreshold = 500 * time.Millisecond

	continuousMoveSpeed = 0.5
)

// CommandRecorder receives every dispatched PTZ command for the audit trail.
type CommandRecorder interface {
	Record(entry models.CommandAuditEntry)
}

// MovementManager - translates operator intent into rig commands with
// tap-vs-hold semantics. One press maps to exactly one of {discrete move,
// continuous start+stop, nothing}, never both a tap and a hold.
type MovementManager struct {
	ptz      PTZApi
	store    *CameraStore
	notifier *NotificationManager
	settings *SettingsManager
	recorder CommandRecorder

	mu            sync.Mutex
	holdThreshold time.Duration
	sessions      map[string]*HoldSession // one per camera+direction
}

func NewMovementManager(ptz PTZApi, store *CameraStore, notifier *NotificationManager, settings *SettingsManager) *MovementManager {
	return &MovementManager{
		ptz:           ptz,
		store:         store,
		notifier:      notifier,
		settings:      settings,
		holdThreshold: DefaultHoldThreshold,
		sessions:      make(map[string]*HoldSession),
	}
}

// SetHoldThreshold overrides the press-and-hold threshold (config driven).
// Safe to call while sessions are active; running timers keep the threshold
// they were armed with.
func (mm *MovementManager) SetHoldThreshold(d time.Duration) {
	mm.mu.Lock()
	mm.holdThreshold = d
	mm.mu.Unlock()
}

// SetRecorder wires the command audit trail.
func (mm *MovementManager) SetRecorder(r CommandRecorder) {
	mm.recorder = r
}

func (mm *MovementManager) record(entry models.CommandAuditEntry) {
	if mm.recorder != nil {
		entry.Created = time.Now().UTC().Unix() * 1000
		mm.recorder.Record(entry)
	}
}

// Move fires one discrete move. Failure raises a notification and leaves the
// continuous-move state untouched.
func (mm *MovementManager) Move(ctx context.Context, nickname, direction string, velocityFactor float64) error {
	if !models.ValidDirection(direction) {
		return models.ErrInvalidDirection
	}
	if velocityFactor <= 0 {
		velocityFactor = 1
	}
	if err := mm.ptz.Move(ctx, nickname, direction, velocityFactor); err != nil {
		g.Log.Error("discrete move failed", nickname, direction, err)
		mm.notifier.Error("Failed to move camera " + mm.cameraLabel(nickname))
		return err
	}
	mm.record(models.CommandAuditEntry{Camera: nickname, Command: "move", Direction: direction, VelocityFactor: velocityFactor})
	return nil
}

// StartContinuous begins a continuous move. A second start while one is
// running for the same camera is a silent no-op. On failure the flag is
// rolled back and the caller must not assume movement started.
func (mm *MovementManager) StartContinuous(ctx context.Context, nickname, direction string) error {
	if !models.ValidDirection(direction) {
		return models.ErrInvalidDirection
	}
	if !mm.store.TryBeginContinuous(nickname) {
		return nil
	}
	return mm.dispatchContinuous(ctx, nickname, direction)
}

// StopContinuous flips the flag first and then issues a best-effort stop.
// The flag flip is the authority: a stop racing ahead of the start response
// still settles on "stopped".
func (mm *MovementManager) StopContinuous(ctx context.Context, nickname string) error {
	if !mm.store.EndContinuous(nickname) {
		return nil
	}
	if err := mm.ptz.StopMove(ctx, nickname); err != nil {
		g.Log.Error("continuous move stop failed", nickname, err)
		mm.notifier.Error("Failed to stop camera movement")
		return err
	}
	mm.record(models.CommandAuditEntry{Camera: nickname, Command: "stop"})
	return nil
}

// GotoPreset jumps to a stored preset. Re-selecting the already selected
// token is a no-op with zero network calls. Selection is only committed on
// success; failure clears it so the display never shows a wrong active
// preset.
func (mm *MovementManager) GotoPreset(ctx context.Context, nickname, token string) error {
	if st := mm.store.State(nickname); st != nil && st.SelectedPresetToken != nil && *st.SelectedPresetToken == token {
		return nil
	}
	if err := mm.ptz.GotoPreset(ctx, nickname, token); err != nil {
		g.Log.Error("goto preset failed", nickname, token, err)
		mm.store.SetSelectedPreset(nickname, nil)
		mm.notifier.Error("Failed to move to preset " + mm.presetLabel(nickname, token))
		return err
	}
	mm.store.SetSelectedPreset(nickname, &token)
	mm.notifier.Success("Moved to preset " + mm.presetLabel(nickname, token))
	mm.record(models.CommandAuditEntry{Camera: nickname, Command: "goto_preset", PresetToken: token})
	return nil
}

func (mm *MovementManager) cameraLabel(nickname string) string {
	if mm.settings != nil {
		return mm.settings.DisplayCameraName(nickname)
	}
	return nickname
}

func (mm *MovementManager) presetLabel(nickname, token string) string {
	name := token
	if st := mm.store.State(nickname); st != nil {
		for _, p := range st.Presets {
			if p.Token == token {
				name = p.Name
				break
			}
		}
	}
	if mm.settings != nil {
		return mm.settings.DisplayPresetName(name)
	}
	return name
}
