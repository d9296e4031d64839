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

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ptzrig/ptz-console/services"
)

type cameraHandler struct {
	store *services.CameraStore
}

func NewCameraHandler(store *services.CameraStore) *cameraHandler {
	return &cameraHandler{
		store: store,
	}
}

// List returns the full roster, offline cameras included.
func (ch *cameraHandler) List(c *gin.Context) {
	if !ch.store.RosterLoaded() {
		ch.store.LoadRoster(c.Request.Context())
	}
	c.JSON(http.StatusOK, ch.store.Cameras())
}

// Refresh re-fetches the roster from the rig.
func (ch *cameraHandler) Refresh(c *gin.Context) {
	ch.store.RefreshRoster(c.Request.Context())
	c.JSON(http.StatusOK, ch.store.Cameras())
}

// State returns the cached runtime state for one camera, loading it first
// when never seen.
func (ch *cameraHandler) State(c *gin.Context) {
	nickname := c.Param("name")
	if nickname == "" {
		AbortWithError(c, http.StatusBadRequest, "camera name required")
		return
	}
	st := ch.store.State(nickname)
	if st == nil {
		if err := ch.store.LoadCameraData(c.Request.Context(), nickname); err != nil {
			abortFromServiceError(c, err)
			return
		}
		st = ch.store.State(nickname)
	}
	c.JSON(http.StatusOK, st)
}

// Reload forces a fresh status+preset fetch for one camera.
func (ch *cameraHandler) Reload(c *gin.Context) {
	nickname := c.Param("name")
	if nickname == "" {
		AbortWithError(c, http.StatusBadRequest, "camera name required")
		return
	}
	if err := ch.store.LoadCameraData(c.Request.Context(), nickname); err != nil {
		abortFromServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ch.store.State(nickname))
}

// Select commits the globally selected camera.
func (ch *cameraHandler) Select(c *gin.Context) {
	nickname := c.Param("name")
	if nickname == "" {
		AbortWithError(c, http.StatusBadRequest, "camera name required")
		return
	}
	ch.store.SelectCamera(nickname)
	c.Status(http.StatusOK)
}

// Selected reports the current selection, empty when nothing is selected yet.
func (ch *cameraHandler) Selected(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"selected": ch.store.SelectedCamera()})
}
