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
	"testing"

	"github.com/ptzrig/ptz-console/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCreatesEmptyDefaultSettings(t *testing.T) {
	sm := NewSettingsManager(testStorage(t))

	settings, err := sm.Get()
	require.NoError(t, err)
	assert.Equal(t, models.SettingDefaultKey, settings.Name)
	assert.Empty(t, settings.SelectedCamera)
}

func TestSetSelectedCameraPersists(t *testing.T) {
	storage := testStorage(t)
	sm := NewSettingsManager(storage)

	require.NoError(t, sm.SetSelectedCamera("stage"))

	// a fresh manager over the same storage sees the selection
	sm2 := NewSettingsManager(storage)
	settings, err := sm2.Get()
	require.NoError(t, err)
	assert.Equal(t, "stage", settings.SelectedCamera)
}

func TestOverwriteReplacesNameTablesKeepsSelection(t *testing.T) {
	sm := NewSettingsManager(testStorage(t))
	require.NoError(t, sm.SetSelectedCamera("front"))

	require.NoError(t, sm.Overwrite(&models.Settings{
		CameraNames: map[string]string{"front": "Front of House"},
		PresetNames: map[string]string{"wide": "Wide Shot"},
	}))

	settings, err := sm.Get()
	require.NoError(t, err)
	assert.Equal(t, "front", settings.SelectedCamera)
	assert.Equal(t, "Front of House", settings.CameraNames["front"])
	assert.NotZero(t, settings.Modified)
}

func TestDisplayNamesFallBackToRawValues(t *testing.T) {
	sm := NewSettingsManager(testStorage(t))
	require.NoError(t, sm.Overwrite(&models.Settings{
		CameraNames: map[string]string{"front": "Front of House"},
	}))

	assert.Equal(t, "Front of House", sm.DisplayCameraName("front"))
	assert.Equal(t, "stage", sm.DisplayCameraName("stage"))
	assert.Equal(t, "wide", sm.DisplayPresetName("wide"))
}
