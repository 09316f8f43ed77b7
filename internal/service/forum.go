package service

import (
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"github.com/aviationlaunchpad/launchpad/internal/domain"
	internal_errors "github.com/aviationlaunchpad/launchpad/internal/errors"
)

// ForumService is the single point of mutation for threads and replies.
// Every successful mutation reaches all change-feed subscribers, whichever
// session caused it.
type ForumService interface {
	Create(data domain.ThreadCreationData) (domain.Thread, error)
	Get(id domain.ThreadId) (domain.Thread, error)
	List(category string) ([]domain.Thread, error)
	Update(id domain.ThreadId, callerId domain.AccountId, title, body string) error
	Delete(id domain.ThreadId, callerId domain.AccountId) error
	Like(id domain.ThreadId) (int, error)
	AddReply(threadId domain.ThreadId, authorName, body string) (domain.Reply, error)
	Subscribe() (<-chan domain.ForumEvent, func())
}

type ForumStorage interface {
	CreateThread(t domain.Thread) (domain.Thread, error)
	GetThread(id domain.ThreadId) (domain.Thread, error)
	ListThreads(category domain.Category) ([]domain.Thread, error)
	UpdateThread(id domain.ThreadId, title, body string) error
	DeleteThread(id domain.ThreadId) error
	LikeThread(id domain.ThreadId) (int, error)
	AddReply(threadId domain.ThreadId, r domain.Reply) (domain.Reply, error)
	// Subscribe's propagation scope is the strategy's consistency scope:
	// cross-process for the shared table, in-process for the local file.
	Subscribe() (<-chan domain.ForumEvent, func())
}

type ForumLimits struct {
	TitleMaxLen int
	BodyMaxLen  int
	ReplyMaxLen int
}

type Forum struct {
	storage  ForumStorage
	limits   ForumLimits
	sanitize *bluemonday.Policy
}

func NewForum(storage ForumStorage, limits ForumLimits) *Forum {
	return &Forum{
		storage: storage,
		limits:  limits,
		// Forum text is plain text; everything HTML-shaped is stripped.
		sanitize: bluemonday.StrictPolicy(),
	}
}

func (f *Forum) cleanText(s string, maxLen int, field string) (string, error) {
	s = strings.TrimSpace(f.sanitize.Sanitize(strings.TrimSpace(s)))
	if s == "" {
		return "", internal_errors.Validation(field + " must not be empty")
	}
	if utf8.RuneCountInString(s) > maxLen {
		return "", internal_errors.Validation(field + " is too long")
	}
	return s, nil
}

func (f *Forum) Create(data domain.ThreadCreationData) (domain.Thread, error) {
	title, err := f.cleanText(data.Title, f.limits.TitleMaxLen, "Title")
	if err != nil {
		return domain.Thread{}, err
	}
	body, err := f.cleanText(data.Body, f.limits.BodyMaxLen, "Body")
	if err != nil {
		return domain.Thread{}, err
	}
	if !domain.ValidCategory(data.Category) {
		return domain.Thread{}, internal_errors.Validation("Unknown category: " + string(data.Category))
	}

	return f.storage.CreateThread(domain.Thread{
		Title:      title,
		Body:       body,
		Category:   data.Category,
		AuthorName: data.AuthorName,
		AuthorId:   data.AuthorId,
		Replies:    []domain.Reply{},
	})
}

func (f *Forum) Get(id domain.ThreadId) (domain.Thread, error) {
	return f.storage.GetThread(id)
}

// List returns all threads, newest first, optionally narrowed to one
// category. Finite and restartable; observers re-issue it on every
// change-feed event.
func (f *Forum) List(category string) ([]domain.Thread, error) {
	if category != "" && !domain.ValidCategory(domain.Category(category)) {
		return nil, internal_errors.Validation("Unknown category: " + category)
	}
	return f.storage.ListThreads(domain.Category(category))
}

// Update replaces title and body in place. Only the author may edit, and
// authorship is decided by the stable account id captured at creation,
// never the display name.
func (f *Forum) Update(id domain.ThreadId, callerId domain.AccountId, title, body string) error {
	cleanTitle, err := f.cleanText(title, f.limits.TitleMaxLen, "Title")
	if err != nil {
		return err
	}
	cleanBody, err := f.cleanText(body, f.limits.BodyMaxLen, "Body")
	if err != nil {
		return err
	}

	if err := f.authorize(id, callerId); err != nil {
		return err
	}
	return f.storage.UpdateThread(id, cleanTitle, cleanBody)
}

func (f *Forum) Delete(id domain.ThreadId, callerId domain.AccountId) error {
	if err := f.authorize(id, callerId); err != nil {
		return err
	}
	return f.storage.DeleteThread(id)
}

func (f *Forum) authorize(id domain.ThreadId, callerId domain.AccountId) error {
	thread, err := f.storage.GetThread(id)
	if err != nil {
		return err
	}
	if thread.AuthorId != callerId {
		return internal_errors.Forbidden("Only the author may modify this thread")
	}
	return nil
}

// Like bumps the counter by exactly one and returns the new value. The
// increment is atomic within the backing store; concurrent likes all land,
// though each caller may briefly see a stale total.
func (f *Forum) Like(id domain.ThreadId) (int, error) {
	return f.storage.LikeThread(id)
}

func (f *Forum) AddReply(threadId domain.ThreadId, authorName, body string) (domain.Reply, error) {
	cleanBody, err := f.cleanText(body, f.limits.ReplyMaxLen, "Reply")
	if err != nil {
		return domain.Reply{}, err
	}

	return f.storage.AddReply(threadId, domain.Reply{
		AuthorName: authorName,
		Body:       cleanBody,
	})
}

func (f *Forum) Subscribe() (<-chan domain.ForumEvent, func()) {
	return f.storage.Subscribe()
}
