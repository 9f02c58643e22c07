// Package poll runs the periodic ingest pass: IMAP digests and the
// precomputed feed, each producing records that land in the store.
package poll

import (
	"context"
	"database/sql"
	"log"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"jobdigest-engine/internal/config"
	"jobdigest-engine/internal/digest"
	"jobdigest-engine/internal/feed"
	"jobdigest-engine/internal/mailfetch"
	"jobdigest-engine/internal/secrets"
	"jobdigest-engine/internal/store"
)

// PollOnce runs both sources concurrently, inserts whatever they
// produced and exports the snapshot. A failing source is logged and
// yields zero records; it never aborts the other source.
func PollOnce(db *sql.DB, cfg config.Config, onNewRecord func()) (added int, err error) {
	parent := context.Background()

	var total atomic.Int64
	var g errgroup.Group

	if cfg.Email.Enabled {
		g.Go(func() error {
			ctx, cancel := context.WithTimeout(parent, 2*time.Minute)
			defer cancel()

			pw, perr := secrets.GetIMAPPassword(secrets.IMAPKeyringAccount(cfg))
			if perr != nil {
				log.Printf("[poll:email] %v", perr)
				return perr
			}

			digests, ferr := mailfetch.FetchDigestsOnce(ctx, cfg, pw)
			if ferr != nil {
				log.Printf("[poll:email] fetch: %v", ferr)
				return ferr
			}

			for _, d := range digests {
				records := digest.ParseDigest(d.Body)
				n := insertRecords(ctx, db, records, onNewRecord)
				total.Add(int64(n))
				log.Printf("[poll:email] subject=%q messages=%d added=%d", d.Subject, len(records), n)
			}
			return nil
		})
	}

	if cfg.App.FeedURL != "" {
		g.Go(func() error {
			n, ferr := RefreshFeed(parent, db, cfg, onNewRecord)
			if ferr != nil {
				// Feed unavailable means zero records, not a poll failure.
				log.Printf("[poll:feed] %v", ferr)
				return nil
			}
			total.Add(int64(n))
			return nil
		})
	}

	err = g.Wait()
	added = int(total.Load())

	if cfg.App.Snapshot && added > 0 {
		sctx, cancel := context.WithTimeout(parent, 30*time.Second)
		defer cancel()
		if serr := store.ExportSnapshot(sctx, db, snapshotPath(cfg)); serr != nil {
			log.Printf("[poll] snapshot: %v", serr)
		}
	}

	return added, err
}

// RefreshFeed fetches and normalizes the precomputed feed payload and
// inserts its records.
func RefreshFeed(ctx context.Context, db *sql.DB, cfg config.Config, onNewRecord func()) (added int, err error) {
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	client := feed.NewClient()
	payload, err := client.Fetch(ctx, cfg.App.FeedURL)
	if err != nil {
		return 0, err
	}

	records := feed.Normalize(payload.DecodeItems())
	n := insertRecords(ctx, db, records, onNewRecord)
	log.Printf("[poll:feed] generated_at=%q items=%d added=%d", payload.GeneratedAt, len(records), n)
	return n, nil
}

func insertRecords(ctx context.Context, db *sql.DB, records []digest.Record, onNewRecord func()) (added int) {
	for _, r := range records {
		ok, err := store.InsertRecordIgnore(ctx, db, r)
		if err != nil {
			log.Printf("[poll] insert error: %v subject=%q id=%s", err, r.Subject, r.ID)
			continue
		}
		if !ok {
			continue
		}
		added++
		if onNewRecord != nil {
			onNewRecord()
		}
	}
	return added
}

func snapshotPath(cfg config.Config) string {
	dir := cfg.App.DataDir
	if dir == "" {
		dir = "."
	}
	return dir + "/jobs.json"
}
