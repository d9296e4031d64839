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

// Package gateway holds the typed request functions towards the remote
// PTZ/OBS rig API. All retry and timeout behavior lives in the resty
// client configured here; callers never retry on their own.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	g "github.com/ptzrig/ptz-console/globals"
	"github.com/ptzrig/ptz-console/models"
	"github.com/ptzrig/ptz-console/utils"
)

const (
	defaultTimeoutSec = 10
	defaultRetryCount = 3
)

// Client - remote rig API access (PTZ camera control + OBS compositor)
type Client struct {
	rest        *resty.Client
	ptzEndpoint string
	obsEndpoint string
}

func NewClient(conf *g.RigSubconfig) *Client {
	timeout := defaultTimeoutSec
	if conf.TimeoutSec > 0 {
		timeout = conf.TimeoutSec
	}
	retries := defaultRetryCount
	if conf.RetryCount > 0 {
		retries = conf.RetryCount
	}
	rest := resty.New().
		SetRetryCount(retries).
		SetTimeout(time.Duration(timeout) * time.Second)

	return &Client{
		rest:        rest,
		ptzEndpoint: strings.TrimRight(conf.PtzEndpoint, "/"),
		obsEndpoint: strings.TrimRight(conf.ObsEndpoint, "/"),
	}
}

// call executes one request and decodes a JSON response into out (when non-nil).
func (cl *Client) call(ctx context.Context, method, url string, body interface{}, out interface{}) error {
	req := cl.rest.R().SetContext(ctx)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	resp, err := req.Execute(method, url)
	if err != nil {
		return err
	}
	if resp.StatusCode() == http.StatusNotFound {
		return models.ErrNotFound
	}
	if resp.StatusCode() == http.StatusServiceUnavailable {
		return models.ErrCameraOffline
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return fmt.Errorf("rig api returned %d: %s", resp.StatusCode(), string(resp.Body()))
	}
	if out != nil {
		if err := json.Unmarshal(resp.Body(), out); err != nil {
			g.Log.Error("failed to unmarshal rig response", url, err)
			return err
		}
	}
	return nil
}

func (cl *Client) ptzURL(path, nickname string) string {
	return utils.NicknameURL(cl.ptzEndpoint, path, nickname)
}

// Cameras lists all cameras the rig knows about, online or not.
func (cl *Client) Cameras(ctx context.Context) ([]models.CameraDescriptor, error) {
	var payload struct {
		Cameras []models.CameraDescriptor `json:"cameras"`
	}
	if err := cl.call(ctx, http.MethodGet, cl.ptzURL("/ptz/cameras", ""), nil, &payload); err != nil {
		return nil, err
	}
	return payload.Cameras, nil
}

// Status fetches the current PTZ position and limits of one camera.
func (cl *Client) Status(ctx context.Context, nickname string) (*models.PTZStatus, error) {
	var status models.PTZStatus
	if err := cl.call(ctx, http.MethodGet, cl.ptzURL("/ptz/status", nickname), nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Presets fetches the stored presets of one camera, positionless ones included.
func (cl *Client) Presets(ctx context.Context, nickname string) ([]models.PresetDescriptor, error) {
	var payload struct {
		Presets []models.PresetDescriptor `json:"presets"`
	}
	if err := cl.call(ctx, http.MethodGet, cl.ptzURL("/ptz/presets", nickname), nil, &payload); err != nil {
		return nil, err
	}
	return payload.Presets, nil
}

func (cl *Client) GotoPreset(ctx context.Context, nickname, presetToken string) error {
	body := map[string]string{"presetToken": presetToken}
	return cl.call(ctx, http.MethodPost, cl.ptzURL("/ptz/goto_preset", nickname), body, nil)
}

func (cl *Client) Move(ctx context.Context, nickname, direction string, velocityFactor float64) error {
	body := map[string]interface{}{
		"direction":       direction,
		"velocity_factor": velocityFactor,
	}
	return cl.call(ctx, http.MethodPost, cl.ptzURL("/ptz/move", nickname), body, nil)
}

func (cl *Client) ContinuousMove(ctx context.Context, nickname, direction string, speed float64) error {
	body := map[string]interface{}{
		"direction": direction,
		"speed":     speed,
	}
	return cl.call(ctx, http.MethodPost, cl.ptzURL("/ptz/continuous_move", nickname), body, nil)
}

func (cl *Client) StopMove(ctx context.Context, nickname string) error {
	return cl.call(ctx, http.MethodPost, cl.ptzURL("/ptz/stop", nickname), nil, nil)
}

func (cl *Client) Imaging(ctx context.Context, nickname string) (models.ImagingSettings, error) {
	var payload struct {
		Imaging models.ImagingSettings `json:"imaging"`
	}
	if err := cl.call(ctx, http.MethodGet, cl.ptzURL("/ptz/imaging", nickname), nil, &payload); err != nil {
		return nil, err
	}
	return payload.Imaging, nil
}

func (cl *Client) NightMode(ctx context.Context, nickname string, enable bool) error {
	body := map[string]bool{"enable": enable}
	return cl.call(ctx, http.MethodPost, cl.ptzURL("/ptz/night_mode", nickname), body, nil)
}

// Transform switches the compositor layout. activeSource is required for
// highlight and ignored for grid.
func (cl *Client) Transform(ctx context.Context, layoutType, activeSource string) error {
	body := map[string]string{"type": layoutType}
	if activeSource != "" {
		body["active_source"] = activeSource
	}
	return cl.call(ctx, http.MethodPost, cl.obsEndpoint+"/obs/transform", body, nil)
}

// CurrentTransformation reads the compositor's active layout.
func (cl *Client) CurrentTransformation(ctx context.Context) (*models.CompositorViewState, error) {
	var state models.CompositorViewState
	if err := cl.call(ctx, http.MethodGet, cl.obsEndpoint+"/obs/current_transformation", nil, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (cl *Client) SwitchScene(ctx context.Context, sceneName string) error {
	body := map[string]string{"scene_name": sceneName}
	return cl.call(ctx, http.MethodPost, cl.obsEndpoint+"/obs/switch_scene", body, nil)
}

func (cl *Client) Reconnect(ctx context.Context) error {
	return cl.call(ctx, http.MethodPost, cl.obsEndpoint+"/obs/reconnect", nil, nil)
}
