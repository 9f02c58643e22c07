package httpapi

import (
	"context"
	"database/sql"
	"sync/atomic"

	"jobdigest-engine/internal/config"
	"jobdigest-engine/internal/events"
)

type Deps struct {
	DB *sql.DB

	Hub *events.Hub

	// Atomic stores
	CfgVal     *atomic.Value // stores config.Config
	PollStatus *atomic.Value // stores poll.Status

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// Ingest entrypoints (injected for testability)
	RunPollOnce func(db *sql.DB, cfg config.Config, onNewRecord func()) (added int, err error)
	RefreshFeed func(ctx context.Context, db *sql.DB, cfg config.Config, onNewRecord func()) (added int, err error)
}
