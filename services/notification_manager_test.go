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
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v7"
	"github.com/ptzrig/ptz-console/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReachesSubscribersAndActiveList(t *testing.T) {
	nm := NewNotificationManager(nil)
	ch, cancel := nm.Subscribe()
	defer cancel()

	sent := nm.Success("Moved to preset Stage Left")
	assert.NotEmpty(t, sent.ID)

	select {
	case got := <-ch:
		assert.Equal(t, sent.ID, got.ID)
		assert.Equal(t, models.SeveritySuccess, got.Severity)
	case <-time.After(time.Second):
		t.Fatal("expected notification on subscriber channel")
	}

	active := nm.Active()
	require.Len(t, active, 1)
	assert.Equal(t, sent.Message, active[0].Message)
}

func TestNotificationAutoDismisses(t *testing.T) {
	nm := NewNotificationManager(nil)
	nm.Publish(models.SeverityInfo, "short lived", 20)

	require.Len(t, nm.Active(), 1)
	time.Sleep(60 * time.Millisecond)
	assert.Empty(t, nm.Active())
}

func TestCancelledSubscriberGetsNothing(t *testing.T) {
	nm := NewNotificationManager(nil)
	ch, cancel := nm.Subscribe()
	cancel()

	nm.Info("nobody listening")

	_, open := <-ch
	assert.False(t, open)
}

func TestSlowSubscriberDoesNotBlockPublish(t *testing.T) {
	nm := NewNotificationManager(nil)
	_, cancel := nm.Subscribe() // never drained
	defer cancel()

	done := make(chan bool)
	go func() {
		for i := 0; i < 64; i++ {
			nm.Info("burst")
		}
		done <- true
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}

func TestPublishMirrorsToRedisChannel(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	sub := rdb.Subscribe(models.RedisNotificationChannel)
	defer sub.Close()
	_, err = sub.Receive()
	require.NoError(t, err)

	nm := NewNotificationManager(rdb)
	nm.Warning("Camera back went offline")

	msg, err := sub.ReceiveTimeout(time.Second)
	require.NoError(t, err)
	m, ok := msg.(*redis.Message)
	require.True(t, ok)
	assert.Contains(t, m.Payload, "Camera back went offline")
}
