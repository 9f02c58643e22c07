package httpapi

import "net/http"

// NewMux returns the raw mux so main() can still attach /shutdown (needs srv+token).
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Records
	rh := RecordsHandler{DB: d.DB}
	mux.HandleFunc("/records", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: rh.List,
	}))

	// Ad-hoc digest parsing (manual input fallback)
	ph := ParseHandler{DB: d.DB, Hub: d.Hub}
	mux.HandleFunc("/parse", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ph.Parse,
	}))

	// Feed refresh
	fh := FeedHandler{DB: d.DB, CfgVal: d.CfgVal, Hub: d.Hub, RefreshFeed: d.RefreshFeed}
	mux.HandleFunc("/feed/refresh", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: fh.Refresh,
	}))

	// Poll control
	plh := PollHandler{
		DB:          d.DB,
		CfgVal:      d.CfgVal,
		PollStatus:  d.PollStatus,
		Hub:         d.Hub,
		RunPollOnce: d.RunPollOnce,
	}
	mux.HandleFunc("/poll/status", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: plh.Status,
	}))
	mux.HandleFunc("/poll/run", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: plh.Run,
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))

	// Secrets (use cfgVal, NOT a snapshot cfg)
	sh := SecretsHandler{CfgVal: d.CfgVal}
	mux.HandleFunc("/api/secrets/imap", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.SetIMAPPassword,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	// Health
	hh := HealthHandler{}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	return mux
}
