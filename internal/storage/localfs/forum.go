package localfs

import (
	"sort"
	"time"

	"github.com/aviationlaunchpad/launchpad/internal/domain"
	internal_errors "github.com/aviationlaunchpad/launchpad/internal/errors"
)

func (s *Storage) findThread(id domain.ThreadId) int {
	for i := range s.forum.Threads {
		if s.forum.Threads[i].Id == id {
			return i
		}
	}
	return -1
}

func (s *Storage) CreateThread(t domain.Thread) (domain.Thread, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t.Id = s.forum.NextThreadId
	t.Likes = 0
	t.CreatedAt = time.Now().UTC()
	t.Replies = []domain.Reply{}

	next := s.forum
	next.NextThreadId++
	next.Threads = append(append([]domain.Thread{}, s.forum.Threads...), t)

	if err := s.persist(forumFile, &next); err != nil {
		return domain.Thread{}, err
	}
	s.forum = next

	s.hub.Publish(domain.ForumEvent{Op: domain.OpInsert, ThreadId: t.Id})
	return copyThread(t), nil
}

func (s *Storage) GetThread(id domain.ThreadId) (domain.Thread, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findThread(id)
	if i < 0 {
		return domain.Thread{}, internal_errors.NotFound("Thread not found")
	}
	return copyThread(s.forum.Threads[i]), nil
}

func (s *Storage) ListThreads(category domain.Category) ([]domain.Thread, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Thread, 0, len(s.forum.Threads))
	for _, t := range s.forum.Threads {
		if category != "" && t.Category != category {
			continue
		}
		out = append(out, copyThread(t))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Id > out[j].Id
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Storage) UpdateThread(id domain.ThreadId, title, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findThread(id)
	if i < 0 {
		return internal_errors.NotFound("Thread not found")
	}

	next := s.forum
	next.Threads = append([]domain.Thread{}, s.forum.Threads...)
	t := copyThread(next.Threads[i])
	t.Title = title
	t.Body = body
	next.Threads[i] = t

	if err := s.persist(forumFile, &next); err != nil {
		return err
	}
	s.forum = next

	s.hub.Publish(domain.ForumEvent{Op: domain.OpUpdate, ThreadId: id})
	return nil
}

// DeleteThread removes the thread and, with it, its embedded replies:
// one logical delete of one record, no second coordinated write.
func (s *Storage) DeleteThread(id domain.ThreadId) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findThread(id)
	if i < 0 {
		return internal_errors.NotFound("Thread not found")
	}

	next := s.forum
	next.Threads = append(append([]domain.Thread{}, s.forum.Threads[:i]...), s.forum.Threads[i+1:]...)

	if err := s.persist(forumFile, &next); err != nil {
		return err
	}
	s.forum = next

	s.hub.Publish(domain.ForumEvent{Op: domain.OpDelete, ThreadId: id})
	return nil
}

func (s *Storage) LikeThread(id domain.ThreadId) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findThread(id)
	if i < 0 {
		return 0, internal_errors.NotFound("Thread not found")
	}

	next := s.forum
	next.Threads = append([]domain.Thread{}, s.forum.Threads...)
	t := copyThread(next.Threads[i])
	t.Likes++
	next.Threads[i] = t

	if err := s.persist(forumFile, &next); err != nil {
		return 0, err
	}
	s.forum = next

	s.hub.Publish(domain.ForumEvent{Op: domain.OpUpdate, ThreadId: id})
	return t.Likes, nil
}

func (s *Storage) AddReply(threadId domain.ThreadId, r domain.Reply) (domain.Reply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findThread(threadId)
	if i < 0 {
		return domain.Reply{}, internal_errors.NotFound("Thread not found")
	}

	r.Id = s.forum.NextReplyId
	r.CreatedAt = time.Now().UTC()

	next := s.forum
	next.NextReplyId++
	next.Threads = append([]domain.Thread{}, s.forum.Threads...)
	t := copyThread(next.Threads[i])
	t.Replies = append(t.Replies, r)
	next.Threads[i] = t

	if err := s.persist(forumFile, &next); err != nil {
		return domain.Reply{}, err
	}
	s.forum = next

	s.hub.Publish(domain.ForumEvent{Op: domain.OpUpdate, ThreadId: threadId})
	return r, nil
}

func (s *Storage) Subscribe() (<-chan domain.ForumEvent, func()) {
	return s.hub.Subscribe()
}
