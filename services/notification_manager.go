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
	"encoding/json"
	"sync"
	"time"

	"github.com/go-redis/redis/v7"
	g "github.com/ptzrig/ptz-console/globals"
	"github.com/ptzrig/ptz-console/models"
	"github.com/rs/xid"
)

// NotificationManager - process wide transient message bus. Messages
// auto-dismiss after their timeout and are never persisted.
type NotificationManager struct {
	mu     sync.Mutex
	subs   map[int]chan models.Notification
	nextID int
	active map[string]models.Notification
	rdb    *redis.Client // optional mirror channel for external consumers
}

func NewNotificationManager(rdb *redis.Client) *NotificationManager {
	return &NotificationManager{
		subs:   make(map[int]chan models.Notification),
		active: make(map[string]models.Notification),
		rdb:    rdb,
	}
}

// Subscribe returns a channel of published notifications and a cancel
// function. Slow consumers lose messages rather than blocking the bus.
func (nm *NotificationManager) Subscribe() (<-chan models.Notification, func()) {
	nm.mu.Lock()
	defer nm.mu.Unlock()
	id := nm.nextID
	nm.nextID++
	ch := make(chan models.Notification, 16)
	nm.subs[id] = ch
	return ch, func() {
		nm.mu.Lock()
		defer nm.mu.Unlock()
		if _, ok := nm.subs[id]; ok {
			delete(nm.subs, id)
			close(ch)
		}
	}
}

// Active returns the not yet dismissed notifications.
func (nm *NotificationManager) Active() []models.Notification {
	nm.mu.Lock()
	defer nm.mu.Unlock()
	out := make([]models.Notification, 0, len(nm.active))
	for _, n := range nm.active {
		out = append(out, n)
	}
	return out
}

// Publish emits a notification with an explicit dismiss timeout.
func (nm *NotificationManager) Publish(severity, message string, timeoutMs int) models.Notification {
	n := models.Notification{
		ID:        xid.New().String(),
		Severity:  severity,
		Message:   message,
		Created:   time.Now().UTC().Unix() * 1000,
		TimeoutMs: timeoutMs,
	}

	nm.mu.Lock()
	nm.active[n.ID] = n
	for _, ch := range nm.subs {
		select {
		case ch <- n:
		default:
		}
	}
	nm.mu.Unlock()

	time.AfterFunc(time.Duration(timeoutMs)*time.Millisecond, func() {
		nm.mu.Lock()
		delete(nm.active, n.ID)
		nm.mu.Unlock()
	})

	if nm.rdb != nil {
		b, err := json.Marshal(n)
		if err == nil {
			if rCmd := nm.rdb.Publish(models.RedisNotificationChannel, string(b)); rCmd.Err() != nil {
				g.Log.Warn("failed to mirror notification to redis", rCmd.Err())
			}
		}
	}
	return n
}

func (nm *NotificationManager) Success(message string) models.Notification {
	return nm.Publish(models.SeveritySuccess, message, models.NotificationTimeoutDefaultMs)
}

func (nm *NotificationManager) Error(message string) models.Notification {
	return nm.Publish(models.SeverityError, message, models.NotificationTimeoutDefaultMs)
}

func (nm *NotificationManager) Warning(message string) models.Notification {
	return nm.Publish(models.SeverityWarning, message, models.NotificationTimeoutDefaultMs)
}

func (nm *NotificationManager) Info(message string) models.Notification {
	return nm.Publish(models.SeverityInfo, message, models.NotificationTimeoutDefaultMs)
}

// ConnectionLost is the distinguished compositor failure message. It stays
// on screen longer since the operator must trigger reconnect manually.
func (nm *NotificationManager) ConnectionLost(message string) models.Notification {
	return nm.Publish(models.SeverityError, message, models.NotificationTimeoutCompositorMs)
}
