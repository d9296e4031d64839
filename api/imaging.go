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

type imagingHandler struct {
	imaging *services.ImagingManager
}

func NewImagingHandler(imaging *services.ImagingManager) *imagingHandler {
	return &imagingHandler{
		imaging: imaging,
	}
}

// Settings returns the camera's current imaging settings.
func (ih *imagingHandler) Settings(c *gin.Context) {
	nickname := c.Param("name")
	settings, err := ih.imaging.Imaging(c.Request.Context(), nickname)
	if err != nil {
		abortFromServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// NightMode toggles the camera's IR/night profile.
func (ih *imagingHandler) NightMode(c *gin.Context) {
	nickname := c.Param("name")
	var req models.NightModeRequest
	if err := c.ShouldBindWith(&req, binding.JSON); err != nil {
		g.Log.Warn("missing required fields", err)
		AbortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := ih.imaging.SetNightMode(c.Request.Context(), nickname, req.Enable); err != nil {
		abortFromServiceError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
