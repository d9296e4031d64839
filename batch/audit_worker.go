// Package batch decouples PTZ command dispatch from the audit trail: commands
// are published to a redis-backed queue and drained in batches into the local
// datastore, so a slow disk never adds latency to a move.
package batch

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/adjust/rmq/v2"
	"github.com/go-redis/redis/v7"
	g "github.com/ptzrig/ptz-console/globals"
	"github.com/ptzrig/ptz-console/models"
	"github.com/ptzrig/ptz-console/services"
	"github.com/rs/xid"
)

// AuditRecorder publishes command audit entries onto the queue. It satisfies
// services.CommandRecorder.
type AuditRecorder struct {
	msgQueue rmq.Queue
}

// Record enqueues one entry. Publishing is fire-and-forget; a full or broken
// queue is logged and the command itself is unaffected.
func (ar *AuditRecorder) Record(entry models.CommandAuditEntry) {
	if entry.ID == "" {
		entry.ID = xid.New().String()
	}
	payload, err := json.Marshal(entry)
	if err != nil {
		g.Log.Error("failed to marshal audit entry", err)
		return
	}
	if ok := ar.msgQueue.PublishBytes(payload); !ok {
		g.Log.Error("failed to publish audit entry", entry.ID)
	}
}

// AuditConsumer drains queued entries into the datastore.
type AuditConsumer struct {
	storage  *services.Storage
	msgQueue rmq.Queue
}

func NewAuditConsumer(storage *services.Storage, msgQueue rmq.Queue) *AuditConsumer {
	ac := &AuditConsumer{
		storage:  storage,
		msgQueue: msgQueue,
	}

	// check every 5 seconds if any rejected entries need re-queueing
	ticker := time.NewTicker(5 * time.Second)
	go func() {
		for range ticker.C {
			ac.failedEntriesTryRedo()
		}
	}()

	return ac
}

func (ac *AuditConsumer) failedEntriesTryRedo() {
	cnt := ac.msgQueue.ReturnAllRejected()
	if cnt > 0 {
		g.Log.Info("re-queued ", cnt, " of previously rejected audit entries")
	}
}

// Consume persists one batch. A malformed payload is dropped; a datastore
// failure rejects the whole batch for a later retry.
func (ac *AuditConsumer) Consume(batch rmq.Deliveries) {
	failed := false
	for _, b := range batch {
		payload := []byte(b.Payload())
		var entry models.CommandAuditEntry
		if err := json.Unmarshal(payload, &entry); err != nil {
			g.Log.Error("failed to unmarshal audit entry in consumer", err)
			// drop event
			continue
		}
		key := strconv.FormatInt(entry.Created, 10) + "_" + entry.ID
		if err := ac.storage.Put(models.PrefixCommandAudit, key, payload); err != nil {
			g.Log.Error("failed to store audit entry", entry.ID, err)
			failed = true
		}
	}
	if failed {
		batch.Reject()
		return
	}
	batch.Ack()
}

// NewAuditPipeline opens the audit queue on an existing redis connection,
// starts its batch consumer and returns the publishing recorder.
func NewAuditPipeline(rdb *redis.Client, storage *services.Storage, conf *g.AuditSubconfig) *AuditRecorder {
	conn := rmq.OpenConnectionWithRedisClient("auditService", rdb)
	msgQueue := conn.OpenQueue(models.RedisAuditQueueName)

	consumer := NewAuditConsumer(storage, msgQueue)
	msgQueue.StartConsuming(conf.UnackedLimit, time.Duration(conf.PollDurationMs)*time.Millisecond)
	msgQueue.AddBatchConsumerWithTimeout(models.RedisAuditQueueName, conf.MaxBatchSize, time.Duration(conf.PollDurationMs)*time.Millisecond, consumer)

	return &AuditRecorder{msgQueue: msgQueue}
}
