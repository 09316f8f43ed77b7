// Package localfs is the single-device persistence strategy: one JSON
// document per data set under a local directory. Data survives restarts on
// this device only; change-feed events propagate in-process only. Never
// combine it with the shared postgres strategy for the same data set.
package localfs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/aviationlaunchpad/launchpad/internal/domain"
	internal_errors "github.com/aviationlaunchpad/launchpad/internal/errors"
	"github.com/aviationlaunchpad/launchpad/internal/logger"
	"github.com/aviationlaunchpad/launchpad/internal/storage/feed"
)

const (
	forumFile    = "forum.json"
	accountsFile = "accounts.json"
)

type forumDocument struct {
	NextThreadId domain.ThreadId `json:"next_thread_id"`
	NextReplyId  domain.ReplyId  `json:"next_reply_id"`
	Threads      []domain.Thread `json:"threads"`
}

type accountsDocument struct {
	Accounts []localAccount `json:"accounts"`
}

// localAccount persists the fields Account hides from JSON responses.
type localAccount struct {
	domain.Account
	Status   domain.AccountStatus `json:"status"`
	PassHash string               `json:"pass_hash,omitempty"`
}

type Storage struct {
	mu       sync.Mutex
	dir      string
	hub      *feed.Hub
	forum    forumDocument
	accounts accountsDocument
}

func New(dataDir string) (*Storage, error) {
	dir := filepath.Clean(dataDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}

	s := &Storage{dir: dir, hub: feed.NewHub()}

	if err := s.loadForum(); err != nil {
		return nil, err
	}
	if err := s.loadAccounts(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Storage) Cleanup() error {
	s.hub.Close()
	return nil
}

func (s *Storage) loadForum() error {
	path := filepath.Join(s.dir, forumFile)
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		s.forum = seedDocument()
		logger.Log.Info("no forum data found, seeding sample threads", "path", path)
		return s.persist(forumFile, &s.forum)
	}
	if err != nil {
		return fmt.Errorf("failed to read forum data: %w", err)
	}

	var doc forumDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("forum data is corrupt: %w", err)
	}
	// Legacy documents may predate replies; treat a missing sequence as
	// empty instead of failing.
	for i := range doc.Threads {
		if doc.Threads[i].Replies == nil {
			doc.Threads[i].Replies = []domain.Reply{}
		}
	}
	s.forum = doc
	return nil
}

func (s *Storage) loadAccounts() error {
	path := filepath.Join(s.dir, accountsFile)
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		s.accounts = accountsDocument{Accounts: []localAccount{}}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read accounts data: %w", err)
	}
	if err := json.Unmarshal(raw, &s.accounts); err != nil {
		return fmt.Errorf("accounts data is corrupt: %w", err)
	}
	return nil
}

// persist writes via temp file + rename so a crash mid-write never leaves
// a truncated document behind.
func (s *Storage) persist(name string, doc interface{}) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}

	path := filepath.Join(s.dir, name)
	tmp, err := os.CreateTemp(s.dir, name+".tmp")
	if err != nil {
		return internal_errors.Unavailable("Forum storage is unavailable")
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return internal_errors.Unavailable("Forum storage is unavailable")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return internal_errors.Unavailable("Forum storage is unavailable")
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return internal_errors.Unavailable("Forum storage is unavailable")
	}
	return nil
}

func copyThread(t domain.Thread) domain.Thread {
	out := t
	out.Replies = make([]domain.Reply, len(t.Replies))
	copy(out.Replies, t.Replies)
	return out
}
