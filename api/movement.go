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
	"github.com/gin-gonic/gin/binding"
	g "github.com/ptzrig/ptz-console/globals"
	"github.com/ptzrig/ptz-console/models"
	"github.com/ptzrig/ptz-console/services"
)

type movementHandler struct {
	movement *services.MovementManager
	store    *services.CameraStore
}

func NewMovementHandler(movement *services.MovementManager, store *services.CameraStore) *movementHandler {
	return &movementHandler{
		movement: movement,
		store:    store,
	}
}

// Move issues one discrete nudge in a direction.
func (mh *movementHandler) Move(c *gin.Context) {
	nickname := c.Param("name")
	var req models.MoveRequest
	if err := c.ShouldBindWith(&req, binding.JSON); err != nil {
		g.Log.Warn("missing required fields", err)
		AbortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := mh.movement.Move(c.Request.Context(), nickname, req.Direction, req.VelocityFactor); err != nil {
		abortFromServiceError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Press opens a press-and-hold session: held past the threshold it becomes a
// continuous move, released earlier it resolves to a single discrete move.
func (mh *movementHandler) Press(c *gin.Context) {
	nickname := c.Param("name")
	var req models.PressRequest
	if err := c.ShouldBindWith(&req, binding.JSON); err != nil {
		g.Log.Warn("missing required fields", err)
		AbortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := mh.movement.Press(nickname, req.Direction); err != nil {
		abortFromServiceError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Release resolves a press-and-hold session. Safe to call without a matching
// press; releasing off-target behaves exactly like an on-target release.
func (mh *movementHandler) Release(c *gin.Context) {
	nickname := c.Param("name")
	var req models.PressRequest
	if err := c.ShouldBindWith(&req, binding.JSON); err != nil {
		g.Log.Warn("missing required fields", err)
		AbortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	mh.movement.Release(c.Request.Context(), nickname, req.Direction)
	c.Status(http.StatusOK)
}

// Stop force-stops any running continuous move on the camera.
func (mh *movementHandler) Stop(c *gin.Context) {
	nickname := c.Param("name")
	if err := mh.movement.StopContinuous(c.Request.Context(), nickname); err != nil {
		abortFromServiceError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Moving reports whether a continuous move is currently flagged.
func (mh *movementHandler) Moving(c *gin.Context) {
	nickname := c.Param("name")
	c.JSON(http.StatusOK, gin.H{"moving": mh.store.IsMoving(nickname)})
}

// GotoPreset drives the camera to a stored preset.
func (mh *movementHandler) GotoPreset(c *gin.Context) {
	nickname := c.Param("name")
	var req models.GotoPresetRequest
	if err := c.ShouldBindWith(&req, binding.JSON); err != nil {
		g.Log.Warn("missing required fields", err)
		AbortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := mh.movement.GotoPreset(c.Request.Context(), nickname, req.PresetToken); err != nil {
		abortFromServiceError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
