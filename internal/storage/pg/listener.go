package pg

import (
	"encoding/json"
	"time"

	"github.com/lib/pq"

	"github.com/aviationlaunchpad/launchpad/internal/domain"
	"github.com/aviationlaunchpad/launchpad/internal/logger"
	"github.com/aviationlaunchpad/launchpad/internal/storage/feed"
)

const forumChannel = "forum_events"

// threadListener bridges Postgres NOTIFY payloads into the in-process hub.
// It is the standing background activity of the shared-remote strategy: a
// passive listener, not a scheduled task.
type threadListener struct {
	pql  *pq.Listener
	done chan struct{}
}

func newThreadListener(databaseURL string, hub *feed.Hub) (*threadListener, error) {
	reportProblem := func(ev pq.ListenerEventType, err error) {
		if err != nil {
			logger.Log.Error("forum change-feed listener problem", "event", int(ev), "error", err)
		}
	}

	pql := pq.NewListener(databaseURL, 10*time.Second, time.Minute, reportProblem)
	if err := pql.Listen(forumChannel); err != nil {
		pql.Close()
		return nil, err
	}

	l := &threadListener{pql: pql, done: make(chan struct{})}
	go l.run(hub)
	return l, nil
}

func (l *threadListener) run(hub *feed.Hub) {
	for {
		select {
		case <-l.done:
			return
		case n, ok := <-l.pql.Notify:
			if !ok {
				return
			}
			if n == nil {
				// The underlying connection was re-established; events may
				// have been missed, so tell observers to re-list.
				hub.Publish(domain.ForumEvent{Op: domain.OpResync})
				continue
			}
			var ev domain.ForumEvent
			if err := json.Unmarshal([]byte(n.Extra), &ev); err != nil {
				logger.Log.Warn("unparseable forum notification", "payload", n.Extra, "error", err)
				continue
			}
			hub.Publish(ev)
		}
	}
}

func (l *threadListener) Close() {
	close(l.done)
	l.pql.Close()
}
