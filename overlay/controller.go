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

// Package overlay owns the full-screen gesture overlay: an explicit state
// machine over {closed, initializing, open(normal|move)} that turns raw
// pointer events into carousel navigation and PTZ commands. The overlay
// camera pointer is local to this package and only committed to the
// app-wide selection explicitly, so rapid carousel swiping never fights
// other consumers over the shared selection.
package overlay

import (
	"context"
	"sync"
	"time"

	g "github.com/ptzrig/ptz-console/globals"
	"github.com/ptzrig/ptz-console/models"
	"github.com/ptzrig/ptz-console/services"
)

// Timing defaults, overridable through config
const (
	DefaultDoubleTapWindow = 300 * time.Millisecond
	DefaultIndicatorTTL    = 250 * time.Millisecond
	DefaultSwipeMinPx      = 30.0
)

// Config - gesture timing knobs
type Config struct {
	DoubleTapWindow time.Duration
	IndicatorTTL    time.Duration
	SwipeMinPx      float64
}

// ConfigFromGlobals builds the overlay config from the yaml subconfig,
// falling back to defaults for unset values.
func ConfigFromGlobals(sub *g.OverlaySubconfig) Config {
	conf := Config{
		DoubleTapWindow: DefaultDoubleTapWindow,
		IndicatorTTL:    DefaultIndicatorTTL,
		SwipeMinPx:      DefaultSwipeMinPx,
	}
	if sub == nil {
		return conf
	}
	if sub.DoubleTapMs > 0 {
		conf.DoubleTapWindow = time.Duration(sub.DoubleTapMs) * time.Millisecond
	}
	if sub.IndicatorMs > 0 {
		conf.IndicatorTTL = time.Duration(sub.IndicatorMs) * time.Millisecond
	}
	if sub.SwipeMinPx > 0 {
		conf.SwipeMinPx = sub.SwipeMinPx
	}
	return conf
}

// Controller - the gesture and overlay state machine
type Controller struct {
	store      *services.CameraStore
	movement   *services.MovementManager
	compositor *services.CompositorManager
	settings   *services.SettingsManager
	conf       Config

	mu              sync.Mutex
	phase           string
	mode            string
	overlayCameraID string
	indicator       models.SwipeIndicator
	pendingTap      *time.Timer
	indicatorTimer  *time.Timer
	tracker         gestureTracker
	holdSession     *services.HoldSession
	unsubscribe     func()
	subs            map[int]chan models.OverlaySnapshot
	nextSubID       int
	camSlots        cameraSlotCache
	presetSlots     presetSlotCache
}

func NewController(store *services.CameraStore, movement *services.MovementManager, compositor *services.CompositorManager, settings *services.SettingsManager, conf Config) *Controller {
	return &Controller{
		store:      store,
		movement:   movement,
		compositor: compositor,
		settings:   settings,
		conf:       conf,
		phase:      models.OverlayPhaseClosed,
		mode:       models.OverlayModeNormal,
		subs:       make(map[int]chan models.OverlaySnapshot),
	}
}

// Open transitions closed->initializing->open. Initialization runs exactly
// once per open cycle: the roster is loaded when empty, the overlay camera
// becomes the committed selection (or the first online camera, committing it
// when nothing was selected yet) and a highlight switch is pushed
// asynchronously. Calling Open while already open is a no-op; calling it
// while still initializing (roster was empty) retries the remaining steps.
func (c *Controller) Open(ctx context.Context) {
	c.mu.Lock()
	switch c.phase {
	case models.OverlayPhaseOpen:
		c.mu.Unlock()
		return
	case models.OverlayPhaseClosed:
		c.phase = models.OverlayPhaseInitializing
		c.mode = models.OverlayModeNormal
	}
	c.mu.Unlock()
	c.publish()

	if !c.store.RosterLoaded() && !c.store.RosterLoading() {
		c.store.LoadRoster(ctx)
	}
	c.initialize()
}

func (c *Controller) initialize() {
	online := c.store.OnlineNicknames()
	if len(online) == 0 {
		// no cameras available; stays initializing until a later Open
		return
	}
	cam := c.store.SelectedCamera()
	commit := false
	if cam == "" {
		cam = online[0]
		commit = true
	}

	c.mu.Lock()
	if c.phase != models.OverlayPhaseInitializing {
		c.mu.Unlock()
		return
	}
	c.phase = models.OverlayPhaseOpen
	c.overlayCameraID = cam
	c.mu.Unlock()

	if commit {
		// the selection listener pushes the highlight switch
		c.store.SelectCamera(cam)
	} else {
		go c.compositor.SwitchView(context.Background(), models.LayoutModeHighlight, cam)
	}
	c.watchCamera(cam)
	go c.store.LoadCameraData(context.Background(), cam)
	c.publish()
}

// Close tears the overlay down: pending timers cancelled, an active hold
// released (so a running continuous move always stops), the overlay camera
// committed as the app-wide selection.
func (c *Controller) Close(ctx context.Context) {
	c.mu.Lock()
	if c.phase == models.OverlayPhaseClosed {
		c.mu.Unlock()
		return
	}
	wasOpen := c.phase == models.OverlayPhaseOpen
	cam := c.overlayCameraID
	hold := c.holdSession
	c.holdSession = nil
	if c.pendingTap != nil {
		c.pendingTap.Stop()
		c.pendingTap = nil
	}
	if c.indicatorTimer != nil {
		c.indicatorTimer.Stop()
		c.indicatorTimer = nil
	}
	unsub := c.unsubscribe
	c.unsubscribe = nil
	c.phase = models.OverlayPhaseClosed
	c.mode = models.OverlayModeNormal
	c.overlayCameraID = ""
	c.indicator = models.SwipeIndicator{}
	c.tracker = gestureTracker{}
	c.mu.Unlock()

	if hold != nil {
		hold.Release(ctx)
	}
	if unsub != nil {
		unsub()
	}
	if wasOpen && cam != "" && cam != c.store.SelectedCamera() {
		c.store.SelectCamera(cam)
	}
	c.publish()
}

// Tap feeds one tap. Two taps inside the double-tap window toggle the mode;
// a lone tap does nothing once the window lapses.
func (c *Controller) Tap() error {
	c.mu.Lock()
	if c.phase != models.OverlayPhaseOpen {
		c.mu.Unlock()
		return models.ErrOverlayClosed
	}
	toggled := c.tapLocked()
	c.mu.Unlock()
	if toggled {
		c.publish()
	}
	return nil
}

// tapLocked implements the pending-timer double-tap mechanism. Returns
// whether the mode toggled.
func (c *Controller) tapLocked() bool {
	if c.pendingTap != nil {
		c.pendingTap.Stop()
		c.pendingTap = nil
		c.toggleModeLocked()
		return true
	}
	c.pendingTap = time.AfterFunc(c.conf.DoubleTapWindow, func() {
		c.mu.Lock()
		c.pendingTap = nil
		c.mu.Unlock()
	})
	return false
}

func (c *Controller) toggleModeLocked() {
	if c.mode == models.OverlayModeNormal {
		c.mode = models.OverlayModeMove
	} else {
		c.mode = models.OverlayModeNormal
	}
	// a hold from the previous mode must not survive the switch
	if c.holdSession != nil {
		s := c.holdSession
		c.holdSession = nil
		go s.Release(context.Background())
	}
}

// Pointer feeds one raw pointer sample. Down/move/up resolve into taps,
// carousel swipes or press-and-hold moves depending on the current mode;
// cancel (pointer left the surface) behaves like up for movement so a
// started continuous move is always stopped, but never counts as a tap.
func (c *Controller) Pointer(ctx context.Context, evt models.PointerEvent) error {
	c.mu.Lock()
	if c.phase != models.OverlayPhaseOpen {
		c.mu.Unlock()
		return models.ErrOverlayClosed
	}

	switch evt.Type {
	case models.PointerDown:
		c.tracker.begin(evt.X, evt.Y)
		c.mu.Unlock()
		return nil

	case models.PointerMove:
		dir, crossed := c.tracker.update(evt.X, evt.Y, c.conf.SwipeMinPx)
		if !crossed {
			c.mu.Unlock()
			return nil
		}
		if c.mode == models.OverlayModeMove {
			cam := c.overlayCameraID
			s, err := c.movement.Press(cam, dir)
			if err != nil {
				c.mu.Unlock()
				return err
			}
			c.holdSession = s
			c.showIndicatorLocked(dir)
			c.mu.Unlock()
			c.publish()
			return nil
		}
		// normal mode swipes act on release
		c.mu.Unlock()
		return nil

	case models.PointerUp, models.PointerCancel:
		classified, dir := c.tracker.end()
		if !classified {
			toggled := false
			if evt.Type == models.PointerUp {
				toggled = c.tapLocked()
			}
			c.mu.Unlock()
			if toggled {
				c.publish()
			}
			return nil
		}
		if c.mode == models.OverlayModeMove {
			s := c.holdSession
			c.holdSession = nil
			c.mu.Unlock()
			if s != nil {
				s.Release(ctx)
			}
			return nil
		}
		c.showIndicatorLocked(dir)
		cam := c.overlayCameraID
		c.mu.Unlock()
		c.publish()
		c.navigate(dir, cam)
		return nil
	}

	c.mu.Unlock()
	g.Log.Warn("unknown pointer event type", evt.Type)
	return nil
}

// navigate resolves a normal-mode swipe: vertical steps the camera
// carousel, horizontal steps the preset carousel. An upward or leftward
// swipe pulls the next entry into view, downward/rightward the previous
// one (the list follows the finger).
func (c *Controller) navigate(direction, cam string) {
	switch direction {
	case models.DirectionUp:
		c.stepCamera(1)
	case models.DirectionDown:
		c.stepCamera(-1)
	case models.DirectionLeft:
		c.stepPreset(cam, 1)
	case models.DirectionRight:
		c.stepPreset(cam, -1)
	}
}

// stepCamera moves the overlay camera pointer circularly through the online
// list and re-issues the highlight switch. The app-wide selection is not
// touched until committed.
func (c *Controller) stepCamera(delta int) {
	online := c.store.OnlineNicknames()
	n := len(online)
	if n <= 1 {
		return
	}
	c.mu.Lock()
	if c.phase != models.OverlayPhaseOpen {
		c.mu.Unlock()
		return
	}
	idx := indexOfString(online, c.overlayCameraID)
	if idx < 0 {
		idx = 0
	}
	next := online[((idx+delta)%n+n)%n]
	c.overlayCameraID = next
	c.mu.Unlock()

	c.watchCamera(next)
	go c.compositor.SwitchView(context.Background(), models.LayoutModeHighlight, next)
	go c.store.LoadCameraData(context.Background(), next)
	c.publish()
}

// stepPreset steps the preset selection circularly for the current overlay
// camera. With nothing selected a forward swipe seeds the first preset and
// a backward swipe the last.
func (c *Controller) stepPreset(cam string, delta int) {
	st := c.store.State(cam)
	if st == nil || len(st.Presets) == 0 {
		return
	}
	presets := st.Presets
	n := len(presets)
	var target models.PresetDescriptor
	if st.SelectedPresetToken == nil {
		if delta > 0 {
			target = presets[0]
		} else {
			target = presets[n-1]
		}
	} else {
		idx := indexOfPreset(presets, *st.SelectedPresetToken)
		if idx < 0 {
			idx = 0
		}
		target = presets[((idx+delta)%n+n)%n]
	}
	go c.movement.GotoPreset(context.Background(), cam, target.Token)
}

// showIndicatorLocked flashes the directional indicator; the tone makes the
// active mode legible without a persistent label.
func (c *Controller) showIndicatorLocked(direction string) {
	tone := models.IndicatorTonePrimary
	if c.mode == models.OverlayModeMove {
		tone = models.IndicatorToneWarning
	}
	c.indicator = models.SwipeIndicator{Direction: direction, Visible: true, Tone: tone}
	if c.indicatorTimer != nil {
		c.indicatorTimer.Stop()
	}
	c.indicatorTimer = time.AfterFunc(c.conf.IndicatorTTL, func() {
		c.mu.Lock()
		c.indicator.Visible = false
		c.mu.Unlock()
		c.publish()
	})
}

// CommitSelection promotes the overlay camera to the app-wide selection.
func (c *Controller) CommitSelection() error {
	c.mu.Lock()
	if c.phase != models.OverlayPhaseOpen {
		c.mu.Unlock()
		return models.ErrOverlayClosed
	}
	cam := c.overlayCameraID
	c.mu.Unlock()
	if cam != "" && cam != c.store.SelectedCamera() {
		c.store.SelectCamera(cam)
	}
	return nil
}

// watchCamera re-points the store subscription at the current overlay
// camera so slot and preset changes re-publish the snapshot.
func (c *Controller) watchCamera(nickname string) {
	unsub := c.store.SubscribeToCamera(nickname, func(models.CameraRuntimeState) {
		c.publish()
	})
	c.mu.Lock()
	old := c.unsubscribe
	c.unsubscribe = unsub
	c.mu.Unlock()
	if old != nil {
		old()
	}
}

// Snapshot returns the current displayable overlay state.
func (c *Controller) Snapshot() models.OverlaySnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() models.OverlaySnapshot {
	snap := models.OverlaySnapshot{
		Phase:         c.phase,
		Mode:          c.mode,
		OverlayCamera: c.overlayCameraID,
		Indicator:     c.indicator,
	}
	if c.overlayCameraID != "" {
		snap.CameraLabel = c.overlayCameraID
		if c.settings != nil {
			snap.CameraLabel = c.settings.DisplayCameraName(c.overlayCameraID)
		}
		snap.CameraSlots = c.camSlots.get(c.store.OnlineNicknames(), c.overlayCameraID)
		if st := c.store.State(c.overlayCameraID); st != nil {
			snap.PresetSlots = c.presetSlots.get(st.Presets, st.SelectedPresetToken)
		}
	}
	return snap
}

// Subscribe returns a channel receiving a snapshot on every overlay change,
// seeded with the current one, plus a cancel function.
func (c *Controller) Subscribe() (<-chan models.OverlaySnapshot, func()) {
	c.mu.Lock()
	id := c.nextSubID
	c.nextSubID++
	ch := make(chan models.OverlaySnapshot, 16)
	c.subs[id] = ch
	seed := c.snapshotLocked()
	c.mu.Unlock()

	ch <- seed
	return ch, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if _, ok := c.subs[id]; ok {
			delete(c.subs, id)
			close(ch)
		}
	}
}

func (c *Controller) publish() {
	c.mu.Lock()
	snap := c.snapshotLocked()
	chans := make([]chan models.OverlaySnapshot, 0, len(c.subs))
	for _, ch := range c.subs {
		chans = append(chans, ch)
	}
	c.mu.Unlock()

	for _, ch := range chans {
		select {
		case ch <- snap:
		default:
		}
	}
}
