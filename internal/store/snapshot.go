package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/gofrs/flock"

	"jobdigest-engine/internal/feed"
)

// ExportSnapshot writes the full record set as a feed payload to path.
// The scheduled fetcher job and the engine can both own this file, so
// the write happens under a flock sidecar lock and lands via rename.
func ExportSnapshot(ctx context.Context, db *sql.DB, path string) error {
	records, err := ListRecords(ctx, db, ListRecordsOpts{Window: "all", Sort: "date"})
	if err != nil {
		return fmt.Errorf("snapshot list: %w", err)
	}

	items := make([]feed.Item, 0, len(records))
	for _, r := range records {
		isJob := r.IsJob
		isFit := r.IsDsPolicyFit
		score := r.DsPolicyScore
		items = append(items, feed.Item{
			ID:                      r.ID,
			Index:                   r.Index,
			Subject:                 r.Subject,
			From:                    r.From,
			Date:                    r.Date,
			Organization:            r.Organization,
			Deadline:                r.Deadline,
			PositionType:            r.PositionType,
			Links:                   r.Links,
			Snippet:                 r.Snippet,
			IsJob:                   &isJob,
			IsDsPolicyFit:           &isFit,
			DsPolicyScore:           &score,
			DsPolicyMatchedKeywords: r.DsPolicyMatchedKeywords,
		})
	}

	itemsB, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("snapshot marshal items: %w", err)
	}

	payload := feed.Payload{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Source:      "engine",
		Items:       itemsB,
		Stats:       &feed.Stats{TotalItems: len(items)},
	}

	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("snapshot marshal: %w", err)
	}
	b = append(b, '\n')

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLockContext(ctx, 200*time.Millisecond)
	if err != nil {
		return fmt.Errorf("snapshot lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("snapshot lock: %s held elsewhere", path+".lock")
	}
	defer func() { _ = lock.Unlock() }()

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("snapshot write: %w", err)
	}
	return os.Rename(tmp, path)
}
