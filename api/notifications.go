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
	"github.com/ptzrig/ptz-console/services"
)

type notificationHandler struct {
	notifier *services.NotificationManager
}

func NewNotificationHandler(notifier *services.NotificationManager) *notificationHandler {
	return &notificationHandler{
		notifier: notifier,
	}
}

// Active returns toasts that have not timed out yet.
func (nh *notificationHandler) Active(c *gin.Context) {
	c.JSON(http.StatusOK, nh.notifier.Active())
}

// Events streams new notifications over SSE until the client disconnects.
func (nh *notificationHandler) Events(c *gin.Context) {
	ch, cancel := nh.notifier.Subscribe()
	defer cancel()

	c.Stream(func(w io.Writer) bool {
		select {
		case n, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent("notification", n)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
