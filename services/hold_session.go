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
	"time"

	g "github.com/ptzrig/ptz-console/globals"
	"github.com/ptzrig/ptz-console/models"
)

// HoldSession - one press gesture being disambiguated into a tap or a hold.
// Identical semantics for on-screen buttons and overlay swipes: the hold
// timer arms on press; firing before release starts a continuous move;
// releasing earlier issues a single discrete move instead.
type HoldSession struct {
	mm        *MovementManager
	nickname  string
	direction string
	started   time.Time
	threshold time.Duration // snapshot of the manager's threshold at press time
	timer     *time.Timer

	holdFired  bool // hold threshold crossed before release
	continuous bool // continuous-move flag was acquired by this gesture
	released   bool
}

// Press opens a hold session for a camera and direction. A second press for
// the same camera+direction while one is active returns the running session.
func (mm *MovementManager) Press(nickname, direction string) (*HoldSession, error) {
	if !models.ValidDirection(direction) {
		return nil, models.ErrInvalidDirection
	}
	key := nickname + "/" + direction
	mm.mu.Lock()
	if s, ok := mm.sessions[key]; ok {
		mm.mu.Unlock()
		return s, nil
	}
	s := &HoldSession{
		mm:        mm,
		nickname:  nickname,
		direction: direction,
		started:   time.Now(),
	}
	mm.sessions[key] = s
	s.threshold = mm.holdThreshold
	s.timer = time.AfterFunc(s.threshold, s.onHold)
	mm.mu.Unlock()

	return s, nil
}

// Release ends the session for a camera and direction. Unknown sessions are
// ignored so releasing after an overlay close or a duplicate release is safe.
func (mm *MovementManager) Release(ctx context.Context, nickname, direction string) {
	mm.mu.Lock()
	s, ok := mm.sessions[nickname+"/"+direction]
	mm.mu.Unlock()
	if ok {
		s.Release(ctx)
	}
}

// dispatchContinuous issues the continuous-move command after the flag has
// already been acquired, rolling the flag back on failure.
func (mm *MovementManager) dispatchContinuous(ctx context.Context, nickname, direction string) error {
	if err := mm.ptz.ContinuousMove(ctx, nickname, direction, continuousMoveSpeed); err != nil {
		g.Log.Error("continuous move start failed", nickname, direction, err)
		mm.store.EndContinuous(nickname)
		mm.notifier.Error("Failed to start camera movement")
		return err
	}
	mm.record(models.CommandAuditEntry{Camera: nickname, Command: "continuous_move", Direction: direction})
	return nil
}

func (s *HoldSession) onHold() {
	s.mm.mu.Lock()
	if s.released {
		s.mm.mu.Unlock()
		return
	}
	s.holdFired = true
	acquired := s.mm.store.TryBeginContinuous(s.nickname)
	if acquired {
		s.continuous = true
	}
	s.mm.mu.Unlock()

	if acquired {
		// the flag is set before the response arrives; a release during
		// network latency still resolves to a stop
		s.mm.dispatchContinuous(context.Background(), s.nickname, s.direction)
	}
}

// Release resolves the gesture: an active continuous move always wins and is
// stopped; a release under the hold threshold becomes one discrete move; a
// late release where the hold never actually started does nothing. Releasing
// off-target must call this exactly like an on-target release.
func (s *HoldSession) Release(ctx context.Context) {
	s.mm.mu.Lock()
	if s.released {
		s.mm.mu.Unlock()
		return
	}
	s.released = true
	if s.timer != nil {
		s.timer.Stop()
	}
	fired := s.holdFired
	cont := s.continuous
	threshold := s.threshold
	elapsed := time.Since(s.started)
	delete(s.mm.sessions, s.nickname+"/"+s.direction)
	s.mm.mu.Unlock()

	if cont {
		s.mm.StopContinuous(ctx, s.nickname)
		return
	}
	if !fired && elapsed < threshold {
		s.mm.Move(ctx, s.nickname, s.direction, 1)
	}
}
