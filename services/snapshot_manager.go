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

package services

import (
	"context"
	"strconv"
	"time"

	"github.com/go-redis/redis/v7"
	g "github.com/ptzrig/ptz-console/globals"
	"github.com/ptzrig/ptz-console/models"
)

const defaultSnapshotTTL = 2 * time.Second

// SnapshotSource fetches one JPEG frame for a camera from the rig's stream
// server. Satisfied by gateway.StreamClient.
type SnapshotSource interface {
	Snapshot(ctx context.Context, nickname string) ([]byte, error)
}

// SnapshotManager - latest-frame cache per camera backed by redis. Serves
// overlay thumbnails without hammering the stream server; frames older than
// the TTL are refetched on demand.
type SnapshotManager struct {
	source SnapshotSource
	rdb    *redis.Client
	ttl    time.Duration
}

func NewSnapshotManager(source SnapshotSource, rdb *redis.Client, ttl time.Duration) *SnapshotManager {
	if ttl <= 0 {
		ttl = defaultSnapshotTTL
	}
	return &SnapshotManager{
		source: source,
		rdb:    rdb,
		ttl:    ttl,
	}
}

// Latest returns the freshest cached JPEG for a camera, refreshing from the
// stream server when the cache is cold or expired.
func (sn *SnapshotManager) Latest(ctx context.Context, nickname string) ([]byte, error) {
	if sn.rdb == nil {
		return sn.source.Snapshot(ctx, nickname)
	}
	key := models.RedisSnapshotPrefix + nickname

	sn.touch(nickname)

	cached, err := sn.rdb.Get(key).Bytes()
	if err == nil && len(cached) > 0 {
		return cached, nil
	}
	if err != nil && err != redis.Nil {
		g.Log.Warn("snapshot cache read failed", nickname, err)
	}

	frame, err := sn.source.Snapshot(ctx, nickname)
	if err != nil {
		return nil, err
	}
	if setErr := sn.rdb.Set(key, frame, sn.ttl).Err(); setErr != nil {
		g.Log.Warn("snapshot cache write failed", nickname, setErr)
	}
	return frame, nil
}

// touch records the last request time per camera.
func (sn *SnapshotManager) touch(nickname string) {
	ms := strconv.FormatInt(time.Now().UTC().UnixNano()/int64(time.Millisecond), 10)
	if err := sn.rdb.Set(models.RedisSnapshotLastAccessPrefix+nickname, ms, 0).Err(); err != nil {
		g.Log.Warn("snapshot last-access write failed", nickname, err)
	}
}

// CleanupStale drops last-access keys for cameras not requested within
// maxAge. Snapshot payloads expire on their own TTL.
func (sn *SnapshotManager) CleanupStale(maxAge time.Duration) {
	if sn.rdb == nil {
		return
	}
	keys, err := sn.rdb.Keys(models.RedisSnapshotLastAccessPrefix + "*").Result()
	if err != nil {
		g.Log.Warn("snapshot cleanup scan failed", err)
		return
	}
	cutoff := time.Now().Add(-maxAge).UTC().UnixNano() / int64(time.Millisecond)
	for _, key := range keys {
		val, err := sn.rdb.Get(key).Result()
		if err != nil {
			continue
		}
		ms, err := strconv.ParseInt(val, 10, 64)
		if err != nil || ms < cutoff {
			if delErr := sn.rdb.Del(key).Err(); delErr != nil {
				g.Log.Warn("snapshot cleanup delete failed", key, delErr)
			}
		}
	}
}
