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

package api

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	g "github.com/ptzrig/ptz-console/globals"
	"github.com/ptzrig/ptz-console/models"
	"github.com/ptzrig/ptz-console/services"
)

type auditHandler struct {
	storage *services.Storage
}

func NewAuditHandler(storage *services.Storage) *auditHandler {
	return &auditHandler{
		storage: storage,
	}
}

// List returns stored command audit entries, newest first.
func (ah *auditHandler) List(c *gin.Context) {
	raw, err := ah.storage.List(models.PrefixCommandAudit)
	if err != nil {
		AbortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	entries := make([]models.CommandAuditEntry, 0, len(raw))
	for key, val := range raw {
		var entry models.CommandAuditEntry
		if err := json.Unmarshal(val, &entry); err != nil {
			g.Log.Warn("skipping malformed audit entry", key, err)
			continue
		}
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Created > entries[j].Created
	})
	c.JSON(http.StatusOK, entries)
}
