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
	"time"

	g "github.com/ptzrig/ptz-console/globals"
	"github.com/ptzrig/ptz-console/services"
	"github.com/robfig/cron/v3"
)

const (
	defaultRosterRefreshSchedule = "@every 60s"
	defaultMoveReconcileSchedule = "@every 10s"
	defaultMoveMaxAge            = 30 * time.Second
	defaultSnapshotSweep         = "@every 5m"
)

// StartCronJobs schedules the background maintenance: periodic roster
// refresh, stale continuous-move reconciliation and snapshot cache sweeping.
func StartCronJobs(conf g.Config, store *services.CameraStore, movement *services.MovementManager, snapshots *services.SnapshotManager) []cron.EntryID {
	jobs := make([]cron.EntryID, 0)
	c := cron.New(cron.WithLocation(time.UTC))

	rosterSchedule := defaultRosterRefreshSchedule
	reconcileSchedule := defaultMoveReconcileSchedule
	moveMaxAge := defaultMoveMaxAge
	if conf.Jobs != nil {
		if conf.Jobs.RosterRefreshSchedule != "" {
			rosterSchedule = conf.Jobs.RosterRefreshSchedule
		}
		if conf.Jobs.MoveReconcileSchedule != "" {
			reconcileSchedule = conf.Jobs.MoveReconcileSchedule
		}
		if conf.Jobs.MoveMaxAgeSec > 0 {
			moveMaxAge = time.Duration(conf.Jobs.MoveMaxAgeSec) * time.Second
		}
	}

	rosterID, err := c.AddFunc(rosterSchedule, func() {
		store.RefreshRoster(context.Background())
	})
	if err != nil {
		g.Log.Error("failed to schedule roster refresh", err)
	} else {
		jobs = append(jobs, rosterID)
	}

	// a continuous move running way past the hold threshold means a stop
	// command was lost somewhere; force-stop it
	reconcileID, err := c.AddFunc(reconcileSchedule, func() {
		for _, nickname := range store.StaleMoves(moveMaxAge) {
			g.Log.Warn("stopping stale continuous move", nickname)
			if err := movement.StopContinuous(context.Background(), nickname); err != nil {
				g.Log.Error("failed to stop stale continuous move", nickname, err)
			}
		}
	})
	if err != nil {
		g.Log.Error("failed to schedule continuous move reconciliation", err)
	} else {
		jobs = append(jobs, reconcileID)
	}

	sweepID, err := c.AddFunc(defaultSnapshotSweep, func() {
		snapshots.CleanupStale(time.Hour)
	})
	if err != nil {
		g.Log.Error("failed to schedule snapshot cache sweep", err)
	} else {
		jobs = append(jobs, sweepID)
	}

	c.Start()
	g.Log.Info("started background jobs", jobs)
	return jobs
}
