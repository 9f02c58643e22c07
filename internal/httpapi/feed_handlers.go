package httpapi

import (
	"context"
	"database/sql"
	"net/http"
	"sync/atomic"

	"jobdigest-engine/internal/config"
	"jobdigest-engine/internal/events"
)

type FeedHandler struct {
	DB          *sql.DB
	CfgVal      *atomic.Value // config.Config
	Hub         *events.Hub
	RefreshFeed func(ctx context.Context, db *sql.DB, cfg config.Config, onNewRecord func()) (added int, err error)
}

// Refresh pulls the precomputed feed once. A broken feed is reported as
// feed_unavailable so the caller can fall back to manual input; it is
// never a pipeline error.
func (h FeedHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	cfg := h.CfgVal.Load().(config.Config)
	if cfg.App.FeedURL == "" {
		WriteError(w, r, http.StatusBadRequest, "no_feed_url", "app.feed_url is not configured")
		return
	}

	reqID := RequestIDFrom(r.Context())
	added, err := h.RefreshFeed(r.Context(), h.DB, cfg, func() {
		h.Hub.Publish(events.MakeEvent(reqID, "record_added", 1, nil))
	})
	if err != nil {
		WriteJSON(w, http.StatusOK, map[string]any{
			"ok":    false,
			"state": "feed_unavailable",
			"error": err.Error(),
			"added": 0,
		})
		return
	}

	writeJSON(w, map[string]any{"ok": true, "added": added})
}
