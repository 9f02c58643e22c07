package httpapi

import (
	"database/sql"
	"net/http"
	"sync/atomic"
	"time"

	"jobdigest-engine/internal/config"
	"jobdigest-engine/internal/events"
	"jobdigest-engine/internal/poll"
)

type PollHandler struct {
	DB          *sql.DB
	CfgVal      *atomic.Value // config.Config
	PollStatus  *atomic.Value // poll.Status
	Hub         *events.Hub
	RunPollOnce func(db *sql.DB, cfg config.Config, onNewRecord func()) (added int, err error)
}

func (h PollHandler) Status(w http.ResponseWriter, r *http.Request) {
	st := h.PollStatus.Load().(poll.Status)
	writeJSON(w, st)
}

func (h PollHandler) Run(w http.ResponseWriter, r *http.Request) {
	st := h.PollStatus.Load().(poll.Status)
	if st.Running {
		writeJSON(w, map[string]any{"ok": false, "msg": "already running"})
		return
	}

	h.PollStatus.Store(poll.Status{
		LastRunAt: time.Now().Format(time.RFC3339),
		Running:   true,
		LastError: "",
		LastAdded: 0,
		LastOkAt:  st.LastOkAt,
	})

	go func() {
		cfg := h.CfgVal.Load().(config.Config)
		added, err := h.RunPollOnce(h.DB, cfg, func() {
			h.Hub.Publish(events.MakeEvent("", "record_added", 1, nil))
		})

		now := time.Now().Format(time.RFC3339)
		next := h.PollStatus.Load().(poll.Status)
		next.Running = false
		next.LastRunAt = now
		next.LastAdded = added
		if err != nil {
			next.LastError = err.Error()
		} else {
			next.LastError = ""
			next.LastOkAt = now
		}
		h.PollStatus.Store(next)
	}()

	writeJSON(w, map[string]any{"ok": true})
}
