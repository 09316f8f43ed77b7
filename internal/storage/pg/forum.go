package pg

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/aviationlaunchpad/launchpad/internal/domain"
	internal_errors "github.com/aviationlaunchpad/launchpad/internal/errors"
	"github.com/aviationlaunchpad/launchpad/internal/logger"
)

// foreignKeyViolation is the class 23 code raised when a reply references
// a thread that no longer exists.
const foreignKeyViolation = "23503"

func storeUnavailable(op string, err error) error {
	logger.Log.Error("forum store operation failed", "op", op, "error", err)
	return internal_errors.Unavailable("Forum store is unavailable")
}

func (s *Storage) CreateThread(t domain.Thread) (domain.Thread, error) {
	err := s.db.QueryRow(`
        INSERT INTO threads (title, body, category, author_name, author_id)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, likes, created_at
    `, t.Title, t.Body, string(t.Category), t.AuthorName, t.AuthorId).
		Scan(&t.Id, &t.Likes, &t.CreatedAt)
	if err != nil {
		return domain.Thread{}, storeUnavailable("create_thread", err)
	}
	t.Replies = []domain.Reply{}
	return t, nil
}

func (s *Storage) GetThread(id domain.ThreadId) (domain.Thread, error) {
	var t domain.Thread
	var category string
	err := s.db.QueryRow(`
        SELECT id, title, body, category, author_name, author_id, likes, created_at
        FROM threads
        WHERE id = $1
    `, id).Scan(&t.Id, &t.Title, &t.Body, &category, &t.AuthorName, &t.AuthorId, &t.Likes, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Thread{}, internal_errors.NotFound("Thread not found")
		}
		return domain.Thread{}, storeUnavailable("get_thread", err)
	}
	t.Category = domain.Category(category)

	t.Replies = []domain.Reply{}
	rows, err := s.db.Query(`
        SELECT id, author_name, body, created_at
        FROM replies
        WHERE thread_id = $1
        ORDER BY id
    `, id)
	if err != nil {
		return domain.Thread{}, storeUnavailable("get_thread_replies", err)
	}
	defer rows.Close()
	for rows.Next() {
		var r domain.Reply
		if err := rows.Scan(&r.Id, &r.AuthorName, &r.Body, &r.CreatedAt); err != nil {
			return domain.Thread{}, storeUnavailable("scan_reply", err)
		}
		t.Replies = append(t.Replies, r)
	}
	if err := rows.Err(); err != nil {
		return domain.Thread{}, storeUnavailable("get_thread_replies", err)
	}

	return t, nil
}

func (s *Storage) ListThreads(category domain.Category) ([]domain.Thread, error) {
	query := `
        SELECT id, title, body, category, author_name, author_id, likes, created_at
        FROM threads
    `
	args := []interface{}{}
	if category != "" {
		query += " WHERE category = $1"
		args = append(args, string(category))
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, storeUnavailable("list_threads", err)
	}
	defer rows.Close()

	threads := []domain.Thread{}
	threadIdx := make(map[domain.ThreadId]int)
	for rows.Next() {
		var t domain.Thread
		var cat string
		if err := rows.Scan(&t.Id, &t.Title, &t.Body, &cat, &t.AuthorName, &t.AuthorId, &t.Likes, &t.CreatedAt); err != nil {
			return nil, storeUnavailable("scan_thread", err)
		}
		t.Category = domain.Category(cat)
		t.Replies = []domain.Reply{}
		threads = append(threads, t)
		threadIdx[t.Id] = len(threads) - 1
	}
	if err := rows.Err(); err != nil {
		return nil, storeUnavailable("list_threads", err)
	}
	if len(threads) == 0 {
		return threads, nil
	}

	ids := make([]int64, len(threads))
	for i, t := range threads {
		ids[i] = t.Id
	}
	replyRows, err := s.db.Query(`
        SELECT thread_id, id, author_name, body, created_at
        FROM replies
        WHERE thread_id = ANY($1)
        ORDER BY id
    `, pq.Array(ids))
	if err != nil {
		return nil, storeUnavailable("list_replies", err)
	}
	defer replyRows.Close()
	for replyRows.Next() {
		var threadId domain.ThreadId
		var r domain.Reply
		if err := replyRows.Scan(&threadId, &r.Id, &r.AuthorName, &r.Body, &r.CreatedAt); err != nil {
			return nil, storeUnavailable("scan_reply", err)
		}
		if i, ok := threadIdx[threadId]; ok {
			threads[i].Replies = append(threads[i].Replies, r)
		}
	}
	if err := replyRows.Err(); err != nil {
		return nil, storeUnavailable("list_replies", err)
	}

	return threads, nil
}

func (s *Storage) UpdateThread(id domain.ThreadId, title, body string) error {
	result, err := s.db.Exec(`
        UPDATE threads SET title = $2, body = $3 WHERE id = $1
    `, id, title, body)
	if err != nil {
		return storeUnavailable("update_thread", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return storeUnavailable("update_thread", err)
	}
	if affected == 0 {
		return internal_errors.NotFound("Thread not found")
	}
	return nil
}

// DeleteThread removes the thread; replies go with it via ON DELETE
// CASCADE, one logical delete as far as callers are concerned.
func (s *Storage) DeleteThread(id domain.ThreadId) error {
	result, err := s.db.Exec("DELETE FROM threads WHERE id = $1", id)
	if err != nil {
		return storeUnavailable("delete_thread", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return storeUnavailable("delete_thread", err)
	}
	if affected == 0 {
		return internal_errors.NotFound("Thread not found")
	}
	return nil
}

// LikeThread bumps the counter with a single atomic update rather than a
// read-modify-write round trip, so concurrent likes cannot lose updates.
func (s *Storage) LikeThread(id domain.ThreadId) (int, error) {
	var likes int
	err := s.db.QueryRow(`
        UPDATE threads SET likes = likes + 1 WHERE id = $1 RETURNING likes
    `, id).Scan(&likes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, internal_errors.NotFound("Thread not found")
		}
		return 0, storeUnavailable("like_thread", err)
	}
	return likes, nil
}

func (s *Storage) AddReply(threadId domain.ThreadId, r domain.Reply) (domain.Reply, error) {
	err := s.db.QueryRow(`
        INSERT INTO replies (thread_id, author_name, body)
        VALUES ($1, $2, $3)
        RETURNING id, created_at
    `, threadId, r.AuthorName, r.Body).Scan(&r.Id, &r.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == foreignKeyViolation {
			return domain.Reply{}, internal_errors.NotFound("Thread not found")
		}
		return domain.Reply{}, storeUnavailable("add_reply", err)
	}
	return r, nil
}

func (s *Storage) Subscribe() (<-chan domain.ForumEvent, func()) {
	return s.hub.Subscribe()
}
