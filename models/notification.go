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

// Notification severities
const (
	SeveritySuccess = "success"
	SeverityError   = "error"
	SeverityInfo    = "info"
	SeverityWarning = "warning"
)

// Dismiss timeouts in milliseconds. Compositor connection loss stays on
// screen longer because the operator must act on it manually.
const (
	NotificationTimeoutDefaultMs    = 5000
	NotificationTimeoutCompositorMs = 15000
)

// Notification - transient operator-facing message, in-memory only
type Notification struct {
	ID        string `json:"id"`
	Severity  string `json:"severity"`
	Message   string `json:"message"`
	Created   int64  `json:"created"` // unix epoch in ms
	TimeoutMs int    `json:"timeout_ms"`
}
