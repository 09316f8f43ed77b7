package handler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aviationlaunchpad/launchpad/internal/content"
	"github.com/aviationlaunchpad/launchpad/internal/domain"
	internal_errors "github.com/aviationlaunchpad/launchpad/internal/errors"
	"github.com/aviationlaunchpad/launchpad/internal/jwt"
	"github.com/aviationlaunchpad/launchpad/internal/service"
)

// --- Mocks ---

type MockAuthService struct {
	CompleteRegistrationFunc func(in service.RegistrationData) (domain.Account, error)
	SignInFunc               func(credential string) (domain.Account, error)
	SignInWithPasswordFunc   func(email domain.Email, password string) (domain.Account, error)
	AccountFunc              func(id domain.AccountId) (domain.Account, error)
}

func (m *MockAuthService) CompleteRegistration(in service.RegistrationData) (domain.Account, error) {
	if m.CompleteRegistrationFunc != nil {
		return m.CompleteRegistrationFunc(in)
	}
	return domain.Account{Id: "acc-1", Email: "pilot@example.com", Name: "Alex", Role: domain.RoleMember}, nil
}

func (m *MockAuthService) SignIn(credential string) (domain.Account, error) {
	if m.SignInFunc != nil {
		return m.SignInFunc(credential)
	}
	return domain.Account{Id: "acc-1", Email: "pilot@example.com", Name: "Alex", Role: domain.RoleMember}, nil
}

func (m *MockAuthService) SignInWithPassword(email domain.Email, password string) (domain.Account, error) {
	if m.SignInWithPasswordFunc != nil {
		return m.SignInWithPasswordFunc(email, password)
	}
	return domain.Account{Id: "acc-1", Email: email, Name: "Alex", Role: domain.RoleMember}, nil
}

func (m *MockAuthService) Account(id domain.AccountId) (domain.Account, error) {
	if m.AccountFunc != nil {
		return m.AccountFunc(id)
	}
	return domain.Account{Id: id, Email: "pilot@example.com", Name: "Alex", Role: domain.RoleMember}, nil
}

type MockForumService struct {
	CreateFunc    func(data domain.ThreadCreationData) (domain.Thread, error)
	GetFunc       func(id domain.ThreadId) (domain.Thread, error)
	ListFunc      func(category string) ([]domain.Thread, error)
	UpdateFunc    func(id domain.ThreadId, callerId domain.AccountId, title, body string) error
	DeleteFunc    func(id domain.ThreadId, callerId domain.AccountId) error
	LikeFunc      func(id domain.ThreadId) (int, error)
	AddReplyFunc  func(threadId domain.ThreadId, authorName, body string) (domain.Reply, error)
	SubscribeFunc func() (<-chan domain.ForumEvent, func())
}

func (m *MockForumService) Create(data domain.ThreadCreationData) (domain.Thread, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(data)
	}
	return domain.Thread{Id: 1, Title: data.Title, Body: data.Body, Category: data.Category, AuthorName: data.AuthorName, AuthorId: data.AuthorId, Replies: []domain.Reply{}}, nil
}

func (m *MockForumService) Get(id domain.ThreadId) (domain.Thread, error) {
	if m.GetFunc != nil {
		return m.GetFunc(id)
	}
	return domain.Thread{Id: id, Title: "t", Body: "b", Category: domain.CategoryJobLeads, AuthorId: "acc-1", Replies: []domain.Reply{}}, nil
}

func (m *MockForumService) List(category string) ([]domain.Thread, error) {
	if m.ListFunc != nil {
		return m.ListFunc(category)
	}
	return []domain.Thread{}, nil
}

func (m *MockForumService) Update(id domain.ThreadId, callerId domain.AccountId, title, body string) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(id, callerId, title, body)
	}
	return nil
}

func (m *MockForumService) Delete(id domain.ThreadId, callerId domain.AccountId) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(id, callerId)
	}
	return nil
}

func (m *MockForumService) Like(id domain.ThreadId) (int, error) {
	if m.LikeFunc != nil {
		return m.LikeFunc(id)
	}
	return 1, nil
}

func (m *MockForumService) AddReply(threadId domain.ThreadId, authorName, body string) (domain.Reply, error) {
	if m.AddReplyFunc != nil {
		return m.AddReplyFunc(threadId, authorName, body)
	}
	return domain.Reply{Id: 1, AuthorName: authorName, Body: body}, nil
}

func (m *MockForumService) Subscribe() (<-chan domain.ForumEvent, func()) {
	if m.SubscribeFunc != nil {
		return m.SubscribeFunc()
	}
	ch := make(chan domain.ForumEvent)
	return ch, func() { close(ch) }
}

var _ service.AuthService = (*MockAuthService)(nil)
var _ service.ForumService = (*MockForumService)(nil)

func newTestHandler(t *testing.T, auth *MockAuthService, forum *MockForumService) *Handler {
	t.Helper()
	catalog, err := content.Load()
	require.NoError(t, err)
	return New(auth, forum, catalog, jwt.New("test-secret", time.Hour), false, time.Hour)
}

func notFoundErr() error {
	return internal_errors.NotFound("Thread not found")
}
