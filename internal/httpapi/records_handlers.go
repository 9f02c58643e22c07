package httpapi

import (
	"database/sql"
	"net/http"

	"jobdigest-engine/internal/digest"
	"jobdigest-engine/internal/store"
)

type RecordsHandler struct {
	DB *sql.DB
}

// List serves the record set. The job and fit filters are the two
// independent predicates over the full set; the consumer can toggle
// them per request, nothing is pre-baked.
func (h RecordsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	records, err := store.ListRecords(r.Context(), h.DB, store.ListRecordsOpts{
		OnlyJobs: q.Get("job") == "1",
		OnlyFit:  q.Get("fit") == "1",
		Window:   q.Get("window"),
		Sort:     q.Get("sort"),
	})
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "list_failed", err.Error())
		return
	}
	if records == nil {
		records = []digest.Record{}
	}
	writeJSON(w, records)
}
