package worker

import (
	"context"
	"encoding/json"

	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/service"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// SyncWorker mirrors shift template codes into the planning catalog.
// The sync is best-effort: failures never propagate to the caller, but
// failed jobs are parked in the DLQ so an operator can replay them.
type SyncWorker struct {
	sync service.SyncService
	rdb  *redis.Client
}

func NewSyncWorker(sync service.SyncService, rdb *redis.Client) *SyncWorker {
	return &SyncWorker{sync: sync, rdb: rdb}
}

func (w *SyncWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload service.SyncCodigoPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("sync_worker: invalid payload")
		SendToDLQ(ctx, w.rdb, QueueSyncCodigos, "sync_codigo", raw, "invalid payload: "+err.Error())
		return
	}

	result, err := w.sync.SyncCodigoTurno(ctx, payload)
	if err != nil {
		log.Error().Err(err).Str("codigo", payload.Codigo).Msg("sync_worker: sync failed")
		SendToDLQ(ctx, w.rdb, QueueSyncCodigos, "sync_codigo", raw, err.Error())
		return
	}
	log.Info().
		Str("codigo", payload.Codigo).
		Bool("created", result.Created).
		Bool("updated", result.Updated).
		Bool("skipped", result.Skipped).
		Msg("sync_worker: catalog sync processed")
}
