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
	"encoding/json"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v2"
	g "github.com/ptzrig/ptz-console/globals"
	"github.com/ptzrig/ptz-console/models"
)

// SettingsManager - operator settings for the console: display-name
// overrides for cameras and presets plus the last committed camera
// selection, persisted in the local datastore.
type SettingsManager struct {
	storage *Storage
	mux     *sync.RWMutex
	current *models.Settings
}

func NewSettingsManager(storage *Storage) *SettingsManager {
	return &SettingsManager{
		storage: storage,
		mux:     &sync.RWMutex{},
	}
}

// getDefault - retrieves settings if exist, otherwise creates new empty settings
func (sm *SettingsManager) getDefault() (*models.Settings, error) {
	sm.mux.RLock()
	if sm.current != nil {
		cp := *sm.current
		sm.mux.RUnlock()
		return &cp, nil
	}
	sm.mux.RUnlock()

	settingsBytes, err := sm.storage.Get(models.PrefixSettingsKey, models.SettingDefaultKey)
	if err != nil {
		if err != badger.ErrKeyNotFound {
			g.Log.Error("failed to retrieve settings", err)
			return nil, err
		}
	}

	var settings models.Settings
	if settingsBytes == nil {
		settings = models.Settings{
			Name: models.SettingDefaultKey,
		}
	} else {
		unmErr := json.Unmarshal(settingsBytes, &settings)
		if unmErr != nil {
			g.Log.Error("failed to unmarshal settings", unmErr)
			return nil, unmErr
		}
	}
	sm.mux.Lock()
	cp := settings
	sm.current = &cp
	sm.mux.Unlock()
	return &settings, nil
}

func (sm *SettingsManager) Get() (*models.Settings, error) {
	return sm.getDefault()
}

// Overwrite replaces the display-name override tables. The selected camera
// is kept; it has its own write path.
func (sm *SettingsManager) Overwrite(new *models.Settings) error {
	settings, err := sm.getDefault()
	if err != nil {
		g.Log.Error("failed to retrieve default settings", err)
		return err
	}
	settings.CameraNames = new.CameraNames
	settings.PresetNames = new.PresetNames
	if settings.Created <= 0 {
		settings.Created = time.Now().Unix() * 1000
	}
	settings.Modified = time.Now().Unix() * 1000

	return sm.store(settings)
}

// SetSelectedCamera persists the committed camera selection.
func (sm *SettingsManager) SetSelectedCamera(nickname string) error {
	settings, err := sm.getDefault()
	if err != nil {
		return err
	}
	if settings.SelectedCamera == nickname {
		return nil
	}
	settings.SelectedCamera = nickname
	settings.Modified = time.Now().Unix() * 1000
	return sm.store(settings)
}

// DisplayCameraName resolves the operator-friendly label for a camera,
// falling back to the raw nickname.
func (sm *SettingsManager) DisplayCameraName(nickname string) string {
	settings, err := sm.getDefault()
	if err != nil {
		return nickname
	}
	if label, ok := settings.CameraNames[nickname]; ok && label != "" {
		return label
	}
	return nickname
}

// DisplayPresetName resolves the operator-friendly label for a preset,
// falling back to the raw preset name.
func (sm *SettingsManager) DisplayPresetName(name string) string {
	settings, err := sm.getDefault()
	if err != nil {
		return name
	}
	if label, ok := settings.PresetNames[name]; ok && label != "" {
		return label
	}
	return name
}

func (sm *SettingsManager) store(settings *models.Settings) error {
	settingsBytes, err := json.Marshal(settings)
	if err != nil {
		g.Log.Error("failed to marshal settings", err)
		return err
	}
	sm.mux.Lock()
	cp := *settings
	sm.current = &cp
	sm.mux.Unlock()
	return sm.storage.Put(models.PrefixSettingsKey, settings.Name, settingsBytes)
}
