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

package overlay

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ptzrig/ptz-console/models"
	"github.com/ptzrig/ptz-console/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rigFake - minimal scriptable rig for controller tests
type rigFake struct {
	mu      sync.Mutex
	cameras []models.CameraDescriptor
	presets map[string][]models.PresetDescriptor

	moves     []string
	contMoves []string
	stops     []string
	gotoCalls []string
}

func newRigFake(online ...string) *rigFake {
	f := &rigFake{presets: make(map[string][]models.PresetDescriptor)}
	for _, nickname := range online {
		f.cameras = append(f.cameras, models.CameraDescriptor{Nickname: nickname, Status: models.CameraStatusOnline})
	}
	return f
}

func (f *rigFake) Cameras(ctx context.Context) ([]models.CameraDescriptor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.CameraDescriptor, len(f.cameras))
	copy(out, f.cameras)
	return out, nil
}

func (f *rigFake) Status(ctx context.Context, nickname string) (*models.PTZStatus, error) {
	return &models.PTZStatus{}, nil
}

func (f *rigFake) Presets(ctx context.Context, nickname string) ([]models.PresetDescriptor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.PresetDescriptor, len(f.presets[nickname]))
	copy(out, f.presets[nickname])
	return out, nil
}

func (f *rigFake) GotoPreset(ctx context.Context, nickname, presetToken string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gotoCalls = append(f.gotoCalls, nickname+"/"+presetToken)
	return nil
}

func (f *rigFake) Move(ctx context.Context, nickname, direction string, velocityFactor float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.moves = append(f.moves, nickname+"/"+direction)
	return nil
}

func (f *rigFake) ContinuousMove(ctx context.Context, nickname, direction string, speed float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.contMoves = append(f.contMoves, nickname+"/"+direction)
	return nil
}

func (f *rigFake) StopMove(ctx context.Context, nickname string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stops = append(f.stops, nickname)
	return nil
}

func (f *rigFake) Imaging(ctx context.Context, nickname string) (models.ImagingSettings, error) {
	return models.ImagingSettings{}, nil
}

func (f *rigFake) NightMode(ctx context.Context, nickname string, enable bool) error {
	return nil
}

func (f *rigFake) counts() (moves, cont, stops int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.moves), len(f.contMoves), len(f.stops)
}

type obsFake struct {
	mu         sync.Mutex
	transforms []string
}

func (f *obsFake) Transform(ctx context.Context, layoutType, activeSource string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.transforms = append(f.transforms, layoutType+"/"+activeSource)
	return nil
}

func (f *obsFake) CurrentTransformation(ctx context.Context) (*models.CompositorViewState, error) {
	return &models.CompositorViewState{LayoutMode: models.LayoutModeGrid}, nil
}

func (f *obsFake) SwitchScene(ctx context.Context, sceneName string) error { return nil }
func (f *obsFake) Reconnect(ctx context.Context) error                    { return nil }

type fixture struct {
	rig        *rigFake
	store      *services.CameraStore
	movement   *services.MovementManager
	controller *Controller
}

func newFixture(t *testing.T, online ...string) *fixture {
	t.Helper()
	rig := newRigFake(online...)
	notifier := services.NewNotificationManager(nil)
	store := services.NewCameraStore(rig, notifier, nil)
	movement := services.NewMovementManager(rig, store, notifier, nil)
	movement.SetHoldThreshold(30 * time.Millisecond)
	compositor := services.NewCompositorManager(&obsFake{}, notifier, nil)
	controller := NewController(store, movement, compositor, nil, Config{
		DoubleTapWindow: 60 * time.Millisecond,
		IndicatorTTL:    60 * time.Millisecond,
		SwipeMinPx:      30,
	})
	return &fixture{rig: rig, store: store, movement: movement, controller: controller}
}

func eventually(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal(msg)
}

func (fx *fixture) swipe(t *testing.T, fromX, fromY, toX, toY float64) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, fx.controller.Pointer(ctx, models.PointerEvent{Type: models.PointerDown, X: fromX, Y: fromY}))
	require.NoError(t, fx.controller.Pointer(ctx, models.PointerEvent{Type: models.PointerMove, X: toX, Y: toY}))
	require.NoError(t, fx.controller.Pointer(ctx, models.PointerEvent{Type: models.PointerUp, X: toX, Y: toY}))
}

func TestOpenSelectsFirstOnlineCamera(t *testing.T) {
	fx := newFixture(t, "front", "stage")

	fx.controller.Open(context.Background())

	snap := fx.controller.Snapshot()
	assert.Equal(t, models.OverlayPhaseOpen, snap.Phase)
	assert.Equal(t, models.OverlayModeNormal, snap.Mode)
	assert.Equal(t, "front", snap.OverlayCamera)
	assert.Equal(t, "front", fx.store.SelectedCamera())
}

func TestOpenKeepsExistingSelection(t *testing.T) {
	fx := newFixture(t, "front", "stage")
	fx.store.LoadRoster(context.Background())
	fx.store.SelectCamera("stage")

	fx.controller.Open(context.Background())

	assert.Equal(t, "stage", fx.controller.Snapshot().OverlayCamera)
}

func TestOpenWithEmptyRosterRetriesOnNextOpen(t *testing.T) {
	fx := newFixture(t) // no cameras yet

	fx.controller.Open(context.Background())
	assert.Equal(t, models.OverlayPhaseInitializing, fx.controller.Snapshot().Phase)

	// cameras appear on the rig; a refresh plus reopen completes the open
	fx.rig.mu.Lock()
	fx.rig.cameras = []models.CameraDescriptor{{Nickname: "front", Status: models.CameraStatusOnline}}
	fx.rig.mu.Unlock()
	fx.store.RefreshRoster(context.Background())

	fx.controller.Open(context.Background())
	snap := fx.controller.Snapshot()
	assert.Equal(t, models.OverlayPhaseOpen, snap.Phase)
	assert.Equal(t, "front", snap.OverlayCamera)
}

func TestDoubleTapTogglesMode(t *testing.T) {
	fx := newFixture(t, "front")
	fx.controller.Open(context.Background())

	require.NoError(t, fx.controller.Tap())
	require.NoError(t, fx.controller.Tap())
	assert.Equal(t, models.OverlayModeMove, fx.controller.Snapshot().Mode)

	require.NoError(t, fx.controller.Tap())
	require.NoError(t, fx.controller.Tap())
	assert.Equal(t, models.OverlayModeNormal, fx.controller.Snapshot().Mode)
}

func TestLoneTapDoesNotToggleMode(t *testing.T) {
	fx := newFixture(t, "front")
	fx.controller.Open(context.Background())

	require.NoError(t, fx.controller.Tap())
	time.Sleep(100 * time.Millisecond) // past the double-tap window
	require.NoError(t, fx.controller.Tap())
	time.Sleep(100 * time.Millisecond)

	assert.Equal(t, models.OverlayModeNormal, fx.controller.Snapshot().Mode)
}

func TestPointerTapsToggleModeLikeTaps(t *testing.T) {
	fx := newFixture(t, "front")
	fx.controller.Open(context.Background())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		require.NoError(t, fx.controller.Pointer(ctx, models.PointerEvent{Type: models.PointerDown, X: 10, Y: 10}))
		require.NoError(t, fx.controller.Pointer(ctx, models.PointerEvent{Type: models.PointerUp, X: 12, Y: 10}))
	}

	assert.Equal(t, models.OverlayModeMove, fx.controller.Snapshot().Mode)
}

func TestCancelNeverCountsAsTap(t *testing.T) {
	fx := newFixture(t, "front")
	fx.controller.Open(context.Background())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		require.NoError(t, fx.controller.Pointer(ctx, models.PointerEvent{Type: models.PointerDown, X: 10, Y: 10}))
		require.NoError(t, fx.controller.Pointer(ctx, models.PointerEvent{Type: models.PointerCancel, X: 10, Y: 10}))
	}

	assert.Equal(t, models.OverlayModeNormal, fx.controller.Snapshot().Mode)
}

func TestVerticalSwipesStepCameraCarousel(t *testing.T) {
	fx := newFixture(t, "front", "stage", "back")
	fx.controller.Open(context.Background())
	require.Equal(t, "front", fx.controller.Snapshot().OverlayCamera)

	// swipe up advances
	fx.swipe(t, 100, 200, 100, 100)
	assert.Equal(t, "stage", fx.controller.Snapshot().OverlayCamera)

	// swipe down goes back, wrapping
	fx.swipe(t, 100, 100, 100, 200)
	assert.Equal(t, "front", fx.controller.Snapshot().OverlayCamera)
	fx.swipe(t, 100, 100, 100, 200)
	assert.Equal(t, "back", fx.controller.Snapshot().OverlayCamera)

	// selection is not committed while navigating
	assert.Equal(t, "front", fx.store.SelectedCamera())
}

func TestHorizontalSwipeSeedsFirstPreset(t *testing.T) {
	fx := newFixture(t, "front")
	fx.rig.presets["front"] = []models.PresetDescriptor{
		{Name: "wide", Token: "p1", PTZPosition: &models.PTZPosition{PanTilt: &models.PanTilt{X: 0.5}}},
		{Name: "tight", Token: "p2", PTZPosition: &models.PTZPosition{PanTilt: &models.PanTilt{X: 0.7}}},
	}
	fx.store.LoadRoster(context.Background())
	require.NoError(t, fx.store.LoadCameraData(context.Background(), "front"))
	fx.controller.Open(context.Background())

	fx.swipe(t, 200, 100, 100, 100) // left = forward

	eventually(t, func() bool {
		st := fx.store.State("front")
		return st != nil && st.SelectedPresetToken != nil && *st.SelectedPresetToken == "p1"
	}, "left swipe with no selection must seed the first preset")
}

func TestHorizontalSwipeStepsPresetsCircularly(t *testing.T) {
	fx := newFixture(t, "front")
	fx.rig.presets["front"] = []models.PresetDescriptor{
		{Name: "wide", Token: "p1", PTZPosition: &models.PTZPosition{PanTilt: &models.PanTilt{X: 0.5}}},
		{Name: "tight", Token: "p2", PTZPosition: &models.PTZPosition{PanTilt: &models.PanTilt{X: 0.7}}},
	}
	fx.store.LoadRoster(context.Background())
	require.NoError(t, fx.store.LoadCameraData(context.Background(), "front"))
	fx.store.SetSelectedPreset("front", strPtr("p2"))
	fx.controller.Open(context.Background())

	fx.swipe(t, 200, 100, 100, 100) // left from the last wraps to the first

	eventually(t, func() bool {
		st := fx.store.State("front")
		return st != nil && st.SelectedPresetToken != nil && *st.SelectedPresetToken == "p1"
	}, "left swipe must wrap from the last preset to the first")
}

func TestMoveModeSwipeHoldRunsContinuousMove(t *testing.T) {
	fx := newFixture(t, "front")
	fx.controller.Open(context.Background())
	require.NoError(t, fx.controller.Tap())
	require.NoError(t, fx.controller.Tap())
	ctx := context.Background()

	require.NoError(t, fx.controller.Pointer(ctx, models.PointerEvent{Type: models.PointerDown, X: 100, Y: 100}))
	require.NoError(t, fx.controller.Pointer(ctx, models.PointerEvent{Type: models.PointerMove, X: 160, Y: 100}))

	// hold past the threshold
	time.Sleep(80 * time.Millisecond)
	eventually(t, func() bool { return fx.store.IsMoving("front") }, "hold must start a continuous move")

	require.NoError(t, fx.controller.Pointer(ctx, models.PointerEvent{Type: models.PointerUp, X: 160, Y: 100}))

	eventually(t, func() bool { return !fx.store.IsMoving("front") }, "release must stop the continuous move")
	moves, cont, stops := fx.rig.counts()
	assert.Equal(t, 0, moves)
	assert.Equal(t, 1, cont)
	assert.Equal(t, 1, stops)
}

func TestMoveModeQuickSwipeIsDiscreteNudge(t *testing.T) {
	fx := newFixture(t, "front")
	fx.controller.Open(context.Background())
	require.NoError(t, fx.controller.Tap())
	require.NoError(t, fx.controller.Tap())

	fx.swipe(t, 100, 200, 100, 100) // quick up swipe, released under the threshold

	eventually(t, func() bool {
		moves, _, _ := fx.rig.counts()
		return moves == 1
	}, "quick press in move mode must resolve to one discrete move")
	_, cont, _ := fx.rig.counts()
	assert.Equal(t, 0, cont)
}

func TestCloseCommitsOverlayCameraAndStopsHold(t *testing.T) {
	fx := newFixture(t, "front", "stage")
	fx.controller.Open(context.Background())
	require.NoError(t, fx.controller.Tap())
	require.NoError(t, fx.controller.Tap())
	ctx := context.Background()

	require.NoError(t, fx.controller.Pointer(ctx, models.PointerEvent{Type: models.PointerDown, X: 100, Y: 100}))
	require.NoError(t, fx.controller.Pointer(ctx, models.PointerEvent{Type: models.PointerMove, X: 160, Y: 100}))
	time.Sleep(80 * time.Millisecond)
	eventually(t, func() bool { return fx.store.IsMoving("front") }, "hold must start a continuous move")

	fx.controller.Close(ctx)

	snap := fx.controller.Snapshot()
	assert.Equal(t, models.OverlayPhaseClosed, snap.Phase)
	eventually(t, func() bool { return !fx.store.IsMoving("front") }, "close must stop a running continuous move")
}

func TestCloseCommitsCarouselSelection(t *testing.T) {
	fx := newFixture(t, "front", "stage")
	fx.controller.Open(context.Background())

	fx.swipe(t, 100, 200, 100, 100) // advance to stage
	require.Equal(t, "stage", fx.controller.Snapshot().OverlayCamera)
	require.Equal(t, "front", fx.store.SelectedCamera())

	fx.controller.Close(context.Background())

	assert.Equal(t, "stage", fx.store.SelectedCamera())
}

func TestPointerWhileClosedIsRejected(t *testing.T) {
	fx := newFixture(t, "front")
	err := fx.controller.Pointer(context.Background(), models.PointerEvent{Type: models.PointerDown, X: 1, Y: 1})
	assert.Equal(t, models.ErrOverlayClosed, err)
	assert.Equal(t, models.ErrOverlayClosed, fx.controller.Tap())
}

func TestSubscribeReplaysCurrentSnapshot(t *testing.T) {
	fx := newFixture(t, "front")
	fx.controller.Open(context.Background())

	ch, cancel := fx.controller.Subscribe()
	defer cancel()

	select {
	case snap := <-ch:
		assert.Equal(t, models.OverlayPhaseOpen, snap.Phase)
		assert.Equal(t, "front", snap.OverlayCamera)
	case <-time.After(time.Second):
		t.Fatal("expected immediate snapshot replay")
	}
}

func TestIndicatorFlashesAndDecays(t *testing.T) {
	fx := newFixture(t, "front", "stage")
	fx.controller.Open(context.Background())

	fx.swipe(t, 100, 200, 100, 100)

	snap := fx.controller.Snapshot()
	require.True(t, snap.Indicator.Visible)
	assert.Equal(t, models.DirectionUp, snap.Indicator.Direction)
	assert.Equal(t, models.IndicatorTonePrimary, snap.Indicator.Tone)

	eventually(t, func() bool {
		return !fx.controller.Snapshot().Indicator.Visible
	}, "indicator must decay after its TTL")
}

func strPtr(s string) *string { return &s }
