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

import "errors"

var (
	// ErrCameraNotFound - nickname not present in the current roster
	ErrCameraNotFound = errors.New("camera not found")
	// ErrCameraOffline - the rig reports the camera as unreachable
	ErrCameraOffline = errors.New("camera is offline or unavailable")
	// ErrNotFound - remote resource missing (404 from the rig)
	ErrNotFound = errors.New("not found")
	// ErrInvalidDirection - direction keyword the rig does not understand
	ErrInvalidDirection = errors.New("invalid move direction")
	// ErrActiveCameraRequired - highlight layout needs a camera to highlight
	ErrActiveCameraRequired = errors.New("active camera required for highlight layout")
	// ErrOverlayClosed - gesture received while the overlay is not open
	ErrOverlayClosed = errors.New("overlay is not open")
)
