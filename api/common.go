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
	"github.com/ptzrig/ptz-console/models"
)

// JSONError - uniform error payload for all REST endpoints
type JSONError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// AbortWithError stops the handler chain with a JSON error body.
func AbortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, JSONError{Code: code, Message: message})
}

// abortFromServiceError maps well-known service errors onto HTTP statuses.
func abortFromServiceError(c *gin.Context, err error) {
	switch err {
	case models.ErrNotFound, models.ErrCameraNotFound:
		AbortWithError(c, http.StatusNotFound, err.Error())
	case models.ErrCameraOffline:
		AbortWithError(c, http.StatusServiceUnavailable, err.Error())
	case models.ErrInvalidDirection, models.ErrActiveCameraRequired:
		AbortWithError(c, http.StatusBadRequest, err.Error())
	case models.ErrOverlayClosed:
		AbortWithError(c, http.StatusConflict, err.Error())
	default:
		AbortWithError(c, http.StatusInternalServerError, err.Error())
	}
}
