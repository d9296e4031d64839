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

package models

// Constants for Redis stored keys and channels
const (
	// RedisNotificationChannel - pub/sub channel mirroring operator notifications
	RedisNotificationChannel = "ptzconsole.notifications"

	// RedisSnapshotPrefix - latest cached JPEG per camera nickname
	RedisSnapshotPrefix = "snapshot_"
	// RedisSnapshotLastAccessPrefix - last snapshot request time in ms per camera nickname
	RedisSnapshotLastAccessPrefix = "snapshot_last_access_"

	// RedisAuditQueueName - rmq queue carrying command audit entries
	RedisAuditQueueName = "commandauditqueue"
)
