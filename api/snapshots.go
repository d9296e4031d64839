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

type snapshotHandler struct {
	snapshots *services.SnapshotManager
}

func NewSnapshotHandler(snapshots *services.SnapshotManager) *snapshotHandler {
	return &snapshotHandler{
		snapshots: snapshots,
	}
}

// Latest serves the freshest cached still frame for a camera.
func (sh *snapshotHandler) Latest(c *gin.Context) {
	nickname := c.Param("name")
	if nickname == "" {
		AbortWithError(c, http.StatusBadRequest, "camera name required")
		return
	}
	img, err := sh.snapshots.Latest(c.Request.Context(), nickname)
	if err != nil {
		abortFromServiceError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/jpeg", img)
}
