package mailfetch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/emersion/go-imap/v2"

	"jobdigest-engine/internal/config"
)

const maxEmailsPerRun = 200

// FetchedDigest is one digest email reduced to parser input.
type FetchedDigest struct {
	Subject    string
	From       string
	ReceivedAt time.Time
	Body       string
}

// FetchDigestsOnce scans UNSEEN emails in the configured mailbox, keeps
// only those whose subject matches email.search_subject_any, reduces
// each to plain text, and marks every scanned email \Seen.
func FetchDigestsOnce(ctx context.Context, cfg config.Config, password string) ([]FetchedDigest, error) {
	if !cfg.Email.Enabled {
		return nil, nil
	}
	if cfg.Email.IMAPHost == "" || cfg.Email.Username == "" {
		return nil, errors.New("email enabled but missing imap_host/username")
	}
	if password == "" {
		return nil, errors.New("missing IMAP password (store one via the secrets endpoint)")
	}

	addr := cfg.Email.IMAPHost
	if cfg.Email.IMAPPort != 0 && !strings.Contains(addr, ":") {
		addr = fmt.Sprintf("%s:%d", addr, cfg.Email.IMAPPort)
	} else if !strings.Contains(addr, ":") {
		addr += ":993"
	}

	mailbox := cfg.Email.Mailbox
	if mailbox == "" {
		mailbox = "INBOX"
	}

	ctx, cancel := context.WithTimeout(ctx, 120*time.Second)
	defer cancel()

	c, err := DialAndLogin(ctx, addr, cfg.Email.Username, password, defaultTLSConfig(cfg.Email.IMAPHost))
	if err != nil {
		return nil, err
	}
	defer LogoutAndClose(c)

	if _, err := c.Select(mailbox, &imap.SelectOptions{ReadOnly: false}).Wait(); err != nil {
		return nil, fmt.Errorf("imap select %q: %w", mailbox, err)
	}

	msgs, err := FetchUnseen(ctx, c, maxEmailsPerRun)
	if err != nil {
		return nil, err
	}
	if len(msgs) == 0 {
		return nil, nil
	}

	processed := make([]imap.UID, 0, len(msgs))
	out := make([]FetchedDigest, 0, len(msgs))

	for _, m := range msgs {
		plain, htmlPart, subj := ParseRFC822(m.RawMessage, m.Subject)
		processed = append(processed, m.UID)

		if len(cfg.Email.SearchSubjectAny) > 0 && !ContainsAnyCI(subj, cfg.Email.SearchSubjectAny) {
			continue
		}

		body := plain
		if strings.TrimSpace(body) == "" && htmlPart != "" {
			body = HTMLToText(htmlPart)
		}

		out = append(out, FetchedDigest{
			Subject:    subj,
			From:       m.From,
			ReceivedAt: m.Date,
			Body:       body,
		})
	}

	if err := MarkSeen(c, processed); err != nil {
		log.Printf("[mailfetch] mark seen: %v", err)
	}

	return out, nil
}
