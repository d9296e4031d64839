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

package globals

import (
	cfg "github.com/chryscloud/go-microkit-plugins/config"
	mclog "github.com/chryscloud/go-microkit-plugins/log"
)

// Conf global config
var Conf Config

// Log global wide logging
var Log mclog.Logger

type Config struct {
	cfg.YamlConfig `yaml:",inline"`
	Rig            *RigSubconfig     `yaml:"rig"`
	Redis          *RedisSubconfig   `yaml:"redis"`
	Mqtt           *MqttSubconfig    `yaml:"mqtt"`
	Overlay        *OverlaySubconfig `yaml:"overlay"`
	Jobs           *JobsSubconfig    `yaml:"jobs"`
	Audit          *AuditSubconfig   `yaml:"audit"`
}

// RigSubconfig - remote PTZ/OBS rig API endpoints
type RigSubconfig struct {
	PtzEndpoint    string `yaml:"ptz_endpoint"`    // base url of the /ptz API
	ObsEndpoint    string `yaml:"obs_endpoint"`    // base url of the /obs API
	StreamEndpoint string `yaml:"stream_endpoint"` // base url of the MJPEG/snapshot server
	TimeoutSec     int    `yaml:"timeout_sec"`     // per request timeout (default 10)
	RetryCount     int    `yaml:"retry_count"`     // transport level bounded retry (default 3)
}

// RedisSubconfig connnection settings
type RedisSubconfig struct {
	Connection string `yaml:"connection"`
	Database   int    `yaml:"database"`
	Password   string `yaml:"password"`
}

// MqttSubconfig - optional rig status event feed
type MqttSubconfig struct {
	BrokerURL   string `yaml:"broker_url"`
	ClientID    string `yaml:"client_id"`
	StatusTopic string `yaml:"status_topic"` // camera online/offline announcements
	Username    string `yaml:"username"`
	Password    string `yaml:"password"`
}

// OverlaySubconfig - gesture timing knobs
type OverlaySubconfig struct {
	DoubleTapMs  int     `yaml:"double_tap_ms"`  // double tap window (default 300)
	HoldMs       int     `yaml:"hold_ms"`        // press and hold threshold (default 500)
	IndicatorMs  int     `yaml:"indicator_ms"`   // swipe indicator flash (default 250)
	SwipeMinPx   float64 `yaml:"swipe_min_px"`   // minimum travel before a press becomes a swipe (default 30)
	SnapshotTTLs int     `yaml:"snapshot_ttl_s"` // cached snapshot freshness (default 2)
}

// JobsSubconfig - background schedules
type JobsSubconfig struct {
	RosterRefreshSchedule string `yaml:"roster_refresh_schedule"` // cron spec, e.g. "@every 60s"
	MoveReconcileSchedule string `yaml:"move_reconcile_schedule"` // cron spec for stale continuous-move cleanup
	MoveMaxAgeSec         int    `yaml:"move_max_age_sec"`        // continuous move older than this is considered stuck
}

// AuditSubconfig - command audit queue consumer rates
type AuditSubconfig struct {
	UnackedLimit   int `yaml:"unacked_limit"`    // maximum number of unacknowledged entries
	PollDurationMs int `yaml:"poll_duration_ms"` // time to wait until new poll of entries (miliseconds)
	MaxBatchSize   int `yaml:"max_batch_size"`   // maximum number of entries processed in one batch
}

func init() {
	l, err := mclog.NewZapLogger("info")
	if err != nil {
		panic("failed to initalize logging")
	}
	Log = l
}
