package httpapi

import (
	"database/sql"
	"io"
	"net/http"

	"jobdigest-engine/internal/digest"
	"jobdigest-engine/internal/events"
	"jobdigest-engine/internal/store"
)

const maxParseBody = 2 << 20

type ParseHandler struct {
	DB  *sql.DB
	Hub *events.Hub
}

// Parse accepts a raw digest blob as the request body, runs the
// pipeline, persists the resulting records and returns them. This is
// the manual-input path used when the feed is unavailable.
func (h ParseHandler) Parse(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxParseBody))
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "read_failed", err.Error())
		return
	}
	if len(raw) == 0 {
		WriteError(w, r, http.StatusBadRequest, "empty_body", "request body must contain digest text")
		return
	}

	records := digest.ParseDigest(string(raw))

	added := 0
	for _, rec := range records {
		ok, ierr := store.InsertRecordIgnore(r.Context(), h.DB, rec)
		if ierr != nil {
			WriteError(w, r, http.StatusInternalServerError, "insert_failed", ierr.Error())
			return
		}
		if ok {
			added++
		}
	}

	if added > 0 {
		reqID := RequestIDFrom(r.Context())
		h.Hub.Publish(events.MakeEvent(reqID, "records_added", 1, map[string]any{"added": added}))
	}

	writeJSON(w, map[string]any{
		"parsed":  len(records),
		"added":   added,
		"records": records,
	})
}
