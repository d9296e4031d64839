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
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	g "github.com/ptzrig/ptz-console/globals"
	"github.com/ptzrig/ptz-console/models"
	"github.com/ptzrig/ptz-console/overlay"
)

type overlayHandler struct {
	controller *overlay.Controller
}

func NewOverlayHandler(controller *overlay.Controller) *overlayHandler {
	return &overlayHandler{
		controller: controller,
	}
}

// Open brings the overlay up. Idempotent; a second open while the roster is
// still empty re-runs initialization.
func (oh *overlayHandler) Open(c *gin.Context) {
	oh.controller.Open(c.Request.Context())
	c.JSON(http.StatusOK, oh.controller.Snapshot())
}

// Close dismisses the overlay and commits the selection.
func (oh *overlayHandler) Close(c *gin.Context) {
	oh.controller.Close(c.Request.Context())
	c.Status(http.StatusOK)
}

// Tap feeds one synthesized tap (clients with their own gesture recognizers).
func (oh *overlayHandler) Tap(c *gin.Context) {
	if err := oh.controller.Tap(); err != nil {
		abortFromServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, oh.controller.Snapshot())
}

// Pointer feeds one raw pointer sample from a thin client.
func (oh *overlayHandler) Pointer(c *gin.Context) {
	var evt models.PointerEvent
	if err := c.ShouldBindWith(&evt, binding.JSON); err != nil {
		g.Log.Warn("missing required fields", err)
		AbortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := oh.controller.Pointer(c.Request.Context(), evt); err != nil {
		abortFromServiceError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Commit promotes the overlay camera to the app-wide selection without
// closing the overlay.
func (oh *overlayHandler) Commit(c *gin.Context) {
	if err := oh.controller.CommitSelection(); err != nil {
		abortFromServiceError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// State returns the current overlay snapshot.
func (oh *overlayHandler) State(c *gin.Context) {
	c.JSON(http.StatusOK, oh.controller.Snapshot())
}

// Events streams overlay snapshots over SSE until the client disconnects.
func (oh *overlayHandler) Events(c *gin.Context) {
	ch, cancel := oh.controller.Subscribe()
	defer cancel()

	c.Stream(func(w io.Writer) bool {
		select {
		case snap, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent("overlay", snap)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
