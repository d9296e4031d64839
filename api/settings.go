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

type settingsHandler struct {
	settingsManager *services.SettingsManager
}

func NewSettingsHandler(settingsManager *services.SettingsManager) *settingsHandler {
	return &settingsHandler{
		settingsManager: settingsManager,
	}
}

func (sh *settingsHandler) Get(c *gin.Context) {
	settings, err := sh.settingsManager.Get()
	if err != nil {
		AbortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, settings)
}

// Overwrite replaces the operator display-name tables.
func (sh *settingsHandler) Overwrite(c *gin.Context) {
	var settings models.Settings
	if err := c.ShouldBindWith(&settings, binding.JSON); err != nil {
		g.Log.Warn("missing required fields", err)
		AbortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := sh.settingsManager.Overwrite(&settings); err != nil {
		AbortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.Status(http.StatusOK)
}
