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

package gateway

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/ptzrig/ptz-console/utils"
)

// StreamClient - access to the rig's MJPEG/snapshot server
type StreamClient struct {
	rest     *resty.Client
	endpoint string
}

func NewStreamClient(endpoint string) *StreamClient {
	return &StreamClient{
		rest:     resty.New().SetRetryCount(defaultRetryCount).SetTimeout(defaultTimeoutSec * time.Second),
		endpoint: strings.TrimRight(endpoint, "/"),
	}
}

// Snapshot fetches one JPEG frame for a camera from the stream server.
func (sc *StreamClient) Snapshot(ctx context.Context, nickname string) ([]byte, error) {
	resp, err := sc.rest.R().SetContext(ctx).Get(utils.NicknameURL(sc.endpoint, "/snapshot", nickname))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, fmt.Errorf("stream server returned %d", resp.StatusCode())
	}
	if ct := resp.Header().Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		return nil, fmt.Errorf("unexpected snapshot content type %s", ct)
	}
	return resp.Body(), nil
}
