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

type compositorHandler struct {
	compositor *services.CompositorManager
}

func NewCompositorHandler(compositor *services.CompositorManager) *compositorHandler {
	return &compositorHandler{
		compositor: compositor,
	}
}

// State returns the last accepted layout.
func (ch *compositorHandler) State(c *gin.Context) {
	c.JSON(http.StatusOK, ch.compositor.State())
}

// SwitchView flips between the grid and a single-camera highlight.
func (ch *compositorHandler) SwitchView(c *gin.Context) {
	var req models.TransformRequest
	if err := c.ShouldBindWith(&req, binding.JSON); err != nil {
		g.Log.Warn("missing required fields", err)
		AbortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.Type != models.LayoutModeGrid && req.Type != models.LayoutModeHighlight {
		AbortWithError(c, http.StatusBadRequest, "unknown layout type "+req.Type)
		return
	}
	if err := ch.compositor.SwitchView(c.Request.Context(), req.Type, req.ActiveSource); err != nil {
		abortFromServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ch.compositor.State())
}

// SwitchScene changes the compositor scene.
func (ch *compositorHandler) SwitchScene(c *gin.Context) {
	var req models.SwitchSceneRequest
	if err := c.ShouldBindWith(&req, binding.JSON); err != nil {
		g.Log.Warn("missing required fields", err)
		AbortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := ch.compositor.SwitchScene(c.Request.Context(), req.SceneName); err != nil {
		abortFromServiceError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Reconnect asks the rig to re-establish its compositor connection. There is
// no automatic retry; this is the explicit recovery action.
func (ch *compositorHandler) Reconnect(c *gin.Context) {
	if err := ch.compositor.Reconnect(c.Request.Context()); err != nil {
		abortFromServiceError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
