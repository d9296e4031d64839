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

package overlay

import (
	"math"

	"github.com/ptzrig/ptz-console/models"
)

// gestureTracker follows one pointer from down to up and classifies it as a
// tap (never travelled far enough) or a directional swipe. The direction
// locks in the moment the travel first crosses the threshold; later wiggle
// does not re-classify the gesture.
type gestureTracker struct {
	active     bool
	startX     float64
	startY     float64
	classified bool
	direction  string
}

func (t *gestureTracker) begin(x, y float64) {
	t.active = true
	t.startX = x
	t.startY = y
	t.classified = false
	t.direction = ""
}

// update feeds a pointer move. Returns the locked direction and whether this
// very sample crossed the swipe threshold.
func (t *gestureTracker) update(x, y, minTravel float64) (string, bool) {
	if !t.active || t.classified {
		return t.direction, false
	}
	dx := x - t.startX
	dy := y - t.startY
	if math.Abs(dx) < minTravel && math.Abs(dy) < minTravel {
		return "", false
	}
	if math.Abs(dx) >= math.Abs(dy) {
		if dx < 0 {
			t.direction = models.DirectionLeft
		} else {
			t.direction = models.DirectionRight
		}
	} else {
		// screen coordinates grow downward
		if dy < 0 {
			t.direction = models.DirectionUp
		} else {
			t.direction = models.DirectionDown
		}
	}
	t.classified = true
	return t.direction, true
}

// end closes the gesture and reports its classification.
func (t *gestureTracker) end() (bool, string) {
	classified := t.active && t.classified
	direction := t.direction
	t.active = false
	t.classified = false
	t.direction = ""
	return classified, direction
}
