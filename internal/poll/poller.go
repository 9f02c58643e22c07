package poll

import (
	"database/sql"
	"log"
	"sync/atomic"
	"time"

	"jobdigest-engine/internal/config"
	"jobdigest-engine/internal/events"
)

// StartPoller runs PollOnce on a ticker. Config comes from cfgVal each
// tick so reloads take effect without a restart.
func StartPoller(db *sql.DB, cfgVal *atomic.Value, pollStatus *atomic.Value, hub *events.Hub) {
	go func() {
		t := time.NewTicker(30 * time.Second)
		defer t.Stop()

		for range t.C {
			cfgAny := cfgVal.Load()
			if cfgAny == nil {
				continue
			}
			cfg := cfgAny.(config.Config)

			// If no source is configured, skip quietly
			if !cfg.Email.Enabled && cfg.App.FeedURL == "" {
				continue
			}

			st := loadStatus(pollStatus)
			st.Running = true
			st.LastRunAt = time.Now().Format(time.RFC3339)
			pollStatus.Store(st)

			added, err := PollOnce(db, cfg, func() {
				hub.Publish(events.MakeEvent("", "record_added", 1, nil))
			})

			st = loadStatus(pollStatus)
			st.Running = false
			st.LastAdded = added

			if err != nil {
				st.LastError = err.Error()
				log.Printf("[poll] error: %v", err)
			} else {
				st.LastError = ""
				st.LastOkAt = time.Now().Format(time.RFC3339)
				log.Printf("[poll] ok added=%d", added)
			}
			pollStatus.Store(st)
		}
	}()
}

func loadStatus(v *atomic.Value) Status {
	if stAny := v.Load(); stAny != nil {
		return stAny.(Status)
	}
	return Status{}
}
