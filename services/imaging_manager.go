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

// ImagingManager - camera imaging settings and night mode pass-throughs
type ImagingManager struct {
	ptz      PTZApi
	notifier *NotificationManager
	settings *SettingsManager
	recorder CommandRecorder
}

func NewImagingManager(ptz PTZApi, notifier *NotificationManager, settings *SettingsManager) *ImagingManager {
	return &ImagingManager{
		ptz:      ptz,
		notifier: notifier,
		settings: settings,
	}
}

func (im *ImagingManager) SetRecorder(r CommandRecorder) {
	im.recorder = r
}

func (im *ImagingManager) Imaging(ctx context.Context, nickname string) (models.ImagingSettings, error) {
	settings, err := im.ptz.Imaging(ctx, nickname)
	if err != nil {
		g.Log.Error("failed to read imaging settings", nickname, err)
		im.notifier.Error("Failed to read imaging settings")
		return nil, err
	}
	return settings, nil
}

func (im *ImagingManager) SetNightMode(ctx context.Context, nickname string, enable bool) error {
	if err := im.ptz.NightMode(ctx, nickname, enable); err != nil {
		g.Log.Error("failed to toggle night mode", nickname, enable, err)
		im.notifier.Error("Failed to toggle night mode")
		return err
	}
	label := im.cameraLabel(nickname)
	if enable {
		im.notifier.Success("Night mode enabled for " + label)
	} else {
		im.notifier.Success("Night mode disabled for " + label)
	}
	if im.recorder != nil {
		im.recorder.Record(models.CommandAuditEntry{
			Camera:  nickname,
			Command: "night_mode",
			Created: time.Now().UTC().Unix() * 1000,
		})
	}
	return nil
}

func (im *ImagingManager) cameraLabel(nickname string) string {
	if im.settings != nil {
		return im.settings.DisplayCameraName(nickname)
	}
	return nickname
}
