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

package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	api "github.com/ptzrig/ptz-console/api"
	"github.com/ptzrig/ptz-console/overlay"
	"github.com/ptzrig/ptz-console/services"
)

// Handlers - everything the REST surface is built from
type Handlers struct {
	Store      *services.CameraStore
	Movement   *services.MovementManager
	Compositor *services.CompositorManager
	Imaging    *services.ImagingManager
	Snapshots  *services.SnapshotManager
	Notifier   *services.NotificationManager
	Settings   *services.SettingsManager
	Storage    *services.Storage
	Overlay    *overlay.Controller
}

// ConfigAPI - configuring RESTapi services
func ConfigAPI(router *gin.Engine, h Handlers) *gin.Engine {

	router.Use(cors.New(cors.Config{
		AllowCredentials: true,
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"*"},
		AllowHeaders:     []string{"*"},
	}))

	// APIs
	cameraAPI := api.NewCameraHandler(h.Store)
	movementAPI := api.NewMovementHandler(h.Movement, h.Store)
	compositorAPI := api.NewCompositorHandler(h.Compositor)
	imagingAPI := api.NewImagingHandler(h.Imaging)
	snapshotAPI := api.NewSnapshotHandler(h.Snapshots)
	notificationAPI := api.NewNotificationHandler(h.Notifier)
	settingsAPI := api.NewSettingsHandler(h.Settings)
	auditAPI := api.NewAuditHandler(h.Storage)
	overlayAPI := api.NewOverlayHandler(h.Overlay)

	api := router.Group("/api/v1")
	{
		api.GET("cameras", cameraAPI.List)
		api.POST("camerasreload", cameraAPI.Refresh)
		api.GET("camera/:name/state", cameraAPI.State)
		api.POST("camera/:name/reload", cameraAPI.Reload)
		api.POST("camera/:name/select", cameraAPI.Select)
		api.GET("selectedcamera", cameraAPI.Selected)

		api.POST("camera/:name/move", movementAPI.Move)
		api.POST("camera/:name/press", movementAPI.Press)
		api.POST("camera/:name/release", movementAPI.Release)
		api.POST("camera/:name/movestop", movementAPI.Stop)
		api.GET("camera/:name/moving", movementAPI.Moving)
		api.POST("camera/:name/preset", movementAPI.GotoPreset)

		api.GET("camera/:name/imaging", imagingAPI.Settings)
		api.POST("camera/:name/nightmode", imagingAPI.NightMode)
		api.GET("camera/:name/snapshot", snapshotAPI.Latest)

		api.GET("compositor", compositorAPI.State)
		api.POST("compositor/view", compositorAPI.SwitchView)
		api.POST("compositor/scene", compositorAPI.SwitchScene)
		api.POST("compositor/reconnect", compositorAPI.Reconnect)

		api.POST("overlay/open", overlayAPI.Open)
		api.POST("overlay/close", overlayAPI.Close)
		api.POST("overlay/tap", overlayAPI.Tap)
		api.POST("overlay/pointer", overlayAPI.Pointer)
		api.POST("overlay/commit", overlayAPI.Commit)
		api.GET("overlay", overlayAPI.State)
		api.GET("overlay/events", overlayAPI.Events)

		api.GET("notifications", notificationAPI.Active)
		api.GET("notifications/events", notificationAPI.Events)

		api.GET("commandaudit", auditAPI.List)

		api.GET("settings", settingsAPI.Get)
		api.POST("settings", settingsAPI.Overwrite)
	}

	return router
}
