package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aviationlaunchpad/launchpad/internal/api"
	"github.com/aviationlaunchpad/launchpad/internal/domain"
	"github.com/aviationlaunchpad/launchpad/internal/logger"
	"github.com/aviationlaunchpad/launchpad/internal/middleware"
	"github.com/aviationlaunchpad/launchpad/internal/utils"
)

// ListThreads returns every thread, newest first. An optional ?category=
// query narrows the listing to one category.
func (h *Handler) ListThreads(w http.ResponseWriter, r *http.Request) {
	threads, err := h.forum.List(r.URL.Query().Get("category"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, api.ThreadListResponse{
		Threads:    threads,
		Categories: domain.Categories,
	})
}

func (h *Handler) CreateThread(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)

	var req api.CreateThreadRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	thread, err := h.forum.Create(domain.ThreadCreationData{
		Title:      req.Title,
		Body:       req.Body,
		Category:   domain.Category(req.Category),
		AuthorName: user.Name,
		AuthorId:   user.Id,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, api.ThreadResponse{Thread: thread})
}

func (h *Handler) GetThread(w http.ResponseWriter, r *http.Request) {
	id, err := parseThreadId(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	thread, err := h.forum.Get(id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, api.ThreadResponse{Thread: thread})
}

func (h *Handler) UpdateThread(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)

	id, err := parseThreadId(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	var req api.UpdateThreadRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.forum.Update(id, user.Id, req.Title, req.Body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	thread, err := h.forum.Get(id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, api.ThreadResponse{Thread: thread})
}

func (h *Handler) DeleteThread(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)

	id, err := parseThreadId(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.forum.Delete(id, user.Id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// LikeThread bumps the like counter and returns the new total.
func (h *Handler) LikeThread(w http.ResponseWriter, r *http.Request) {
	id, err := parseThreadId(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	likes, err := h.forum.Like(id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, api.LikeResponse{Likes: likes})
}

func (h *Handler) CreateReply(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)

	id, err := parseThreadId(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	var req api.CreateReplyRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	reply, err := h.forum.AddReply(id, user.Name, req.Body)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, api.ReplyResponse{Reply: reply})
}

// ForumEvents streams change-feed events over SSE. Each event tells the
// client that the forum changed and which thread was touched; clients
// re-fetch the listing rather than patching state from the payload.
func (h *Handler) ForumEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	events, cancel := h.forum.Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, open := <-events:
			if !open {
				return
			}
			payload, err := json.Marshal(event)
			if err != nil {
				logger.Log.Error("failed to encode forum event", "error", err)
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", payload)
			flusher.Flush()
		}
	}
}
