package api

import "github.com/aviationlaunchpad/launchpad/internal/domain"

// Request DTOs

type CreateThreadRequest struct {
	Title    string `json:"title" validate:"required"`
	Body     string `json:"body" validate:"required"`
	Category string `json:"category" validate:"required"`
}

type UpdateThreadRequest struct {
	Title string `json:"title" validate:"required"`
	Body  string `json:"body" validate:"required"`
}

type CreateReplyRequest struct {
	Body string `json:"body" validate:"required"`
}

// Response DTOs

type ThreadResponse struct {
	domain.Thread
}

type ThreadListResponse struct {
	Threads    []domain.Thread   `json:"threads"`
	Categories []domain.Category `json:"categories"`
}

type ReplyResponse struct {
	domain.Reply
}

type LikeResponse struct {
	Likes int `json:"likes"`
}
