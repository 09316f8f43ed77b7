package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aviationlaunchpad/launchpad/internal/api"
	"github.com/aviationlaunchpad/launchpad/internal/utils"
)

func (h *Handler) TrainingIndex(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, api.TrainingIndexResponse{Modules: h.catalog.TrainingIndex()})
}

func (h *Handler) TrainingModule(w http.ResponseWriter, r *http.Request) {
	module, err := h.catalog.TrainingModule(chi.URLParam(r, "module"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, api.TrainingModuleResponse{TrainingModule: module})
}

func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, api.EventsResponse{Events: h.catalog.Events})
}

func (h *Handler) Partners(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, api.PartnersResponse{Partners: h.catalog.Partners})
}

func (h *Handler) Careers(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, api.CareersResponse{Postings: h.catalog.Careers})
}
