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

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	cfg "github.com/chryscloud/go-microkit-plugins/config"
	msrv "github.com/chryscloud/go-microkit-plugins/server"
	badger "github.com/dgraph-io/badger/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v7"
	"github.com/ptzrig/ptz-console/batch"
	"github.com/ptzrig/ptz-console/gateway"
	g "github.com/ptzrig/ptz-console/globals"
	"github.com/ptzrig/ptz-console/models"
	"github.com/ptzrig/ptz-console/mqtt"
	"github.com/ptzrig/ptz-console/overlay"
	r "github.com/ptzrig/ptz-console/router"
	"github.com/ptzrig/ptz-console/services"
)

var defaultDBPath = "/data/ptzconsole"

// setup local badger datastore
func setupDB() (*badger.DB, error) {
	if _, err := os.Stat(defaultDBPath); os.IsNotExist(err) {
		errDir := os.MkdirAll(defaultDBPath, os.ModePerm)
		if errDir != nil {
			g.Log.Error("failed to create directory for DB", defaultDBPath, errDir)
			return nil, errDir
		}
	}
	db, err := badger.Open(badger.DefaultOptions(defaultDBPath))
	if err != nil {
		g.Log.Error("failed to open database", err)
		return nil, err
	}
	return db, nil
}

func main() {
	// server wait to shutdown monitoring channels
	done := make(chan bool, 1)
	quit := make(chan os.Signal, 1)

	// check if configuration file exists
	var conf g.Config
	if _, err := os.Stat(defaultDBPath + "/conf.yaml"); os.IsNotExist(err) {
		conf = g.Config{
			YamlConfig: cfg.YamlConfig{
				Port: 8080,
				Mode: gin.ReleaseMode,
			},
		}
	} else {
		err := cfg.NewYamlConfig(defaultDBPath+"/conf.yaml", &conf)
		conf.Port = 8080 // override port, if changed in config
		if err != nil {
			g.Log.Error(err, "conf.yaml failed to load")
			panic("Failed to load conf.yaml")
		}
	}
	if conf.Rig == nil {
		conf.Rig = &g.RigSubconfig{
			PtzEndpoint:    "http://localhost:9090/ptz",
			ObsEndpoint:    "http://localhost:9090/obs",
			StreamEndpoint: "http://localhost:9091",
		}
	}
	g.Conf = conf

	signal.Notify(quit, os.Interrupt)
	defer signal.Stop(quit)

	db, err := setupDB()
	if err != nil {
		g.Log.Error("failed to init database", err)
		os.Exit(1)
	}
	defer db.Close()
	// Storage
	storage := services.NewStorage(db)

	// Redis (notifications mirror, snapshot cache, audit queue)
	var rdb *redis.Client
	if conf.Redis != nil && conf.Redis.Connection != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     conf.Redis.Connection,
			DB:       conf.Redis.Database,
			Password: conf.Redis.Password,
		})
		if _, err := rdb.Ping().Result(); err != nil {
			g.Log.Error("redis unreachable, continuing without cache and audit trail", err)
			rdb = nil
		}
	}

	// Rig gateway
	rigClient := gateway.NewClient(conf.Rig)
	streamClient := gateway.NewStreamClient(conf.Rig.StreamEndpoint)

	// Services
	notifier := services.NewNotificationManager(rdb)
	settingsService := services.NewSettingsManager(storage)
	cameraStore := services.NewCameraStore(rigClient, notifier, settingsService)
	movementService := services.NewMovementManager(rigClient, cameraStore, notifier, settingsService)
	compositorService := services.NewCompositorManager(rigClient, notifier, settingsService)
	imagingService := services.NewImagingManager(rigClient, notifier, settingsService)

	snapshotTTL := time.Duration(0)
	if conf.Overlay != nil && conf.Overlay.SnapshotTTLs > 0 {
		snapshotTTL = time.Duration(conf.Overlay.SnapshotTTLs) * time.Second
	}
	snapshotService := services.NewSnapshotManager(streamClient, rdb, snapshotTTL)

	// selecting a camera re-points the compositor highlight
	cameraStore.SetSelectionListener(func(nickname string) {
		go compositorService.SwitchView(context.Background(), models.LayoutModeHighlight, nickname)
	})

	if conf.Overlay != nil && conf.Overlay.HoldMs > 0 {
		movementService.SetHoldThreshold(time.Duration(conf.Overlay.HoldMs) * time.Millisecond)
	}

	// command audit trail through the redis-backed queue
	if rdb != nil && conf.Audit != nil {
		recorder := batch.NewAuditPipeline(rdb, storage, conf.Audit)
		movementService.SetRecorder(recorder)
		imagingService.SetRecorder(recorder)
	}

	overlayController := overlay.NewController(cameraStore, movementService, compositorService, settingsService, overlay.ConfigFromGlobals(conf.Overlay))

	// optional rig status feed
	statusListener := mqtt.NewStatusListener(cameraStore, notifier)
	if err := statusListener.Start(conf.Mqtt); err != nil {
		g.Log.Error("rig status feed unavailable", err)
	}
	defer statusListener.Stop()

	// warm up: roster and compositor layout
	go cameraStore.LoadRoster(context.Background())
	go compositorService.Refresh(context.Background())

	StartCronJobs(conf, cameraStore, movementService, snapshotService)

	gin.SetMode(conf.Mode)

	router := msrv.NewAPIRouter(&conf.YamlConfig)
	router = r.ConfigAPI(router, r.Handlers{
		Store:      cameraStore,
		Movement:   movementService,
		Compositor: compositorService,
		Imaging:    imagingService,
		Snapshots:  snapshotService,
		Notifier:   notifier,
		Settings:   settingsService,
		Storage:    storage,
		Overlay:    overlayController,
	})

	// start server
	srv := msrv.Start(&conf.YamlConfig, router, g.Log)
	// wait for server shutdown
	go msrv.Shutdown(srv, g.Log, quit, done)

	g.Log.Info("Server is ready to handle requests at", conf.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		g.Log.Error("Could not listen on %s: %v\n", conf.Port, err)
	}

	<-done
	g.Log.Info("exit")
}
