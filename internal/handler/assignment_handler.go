package handler

import (
	"net/http"
	"strings"
	"time"

	"classroom/internal/apperr"
	"classroom/internal/entity"
	"classroom/internal/httpx"
	"classroom/internal/repository"
)

type AssignmentHandler struct {
	scope       classScope
	assignments repository.AssignmentRepository
}

func NewAssignmentHandler(classes repository.ClassRepository, assignments repository.AssignmentRepository) *AssignmentHandler {
	return &AssignmentHandler{scope: classScope{classes: classes}, assignments: assignments}
}

type createAssignmentRequest struct {
	Text    string `json:"text"`
	DueDate string `json:"due_date"`
}

// dueDate validates a YYYY-MM-DD calendar date.
func dueDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", apperr.Validation("due_date is required")
	}
	if _, err := time.Parse(entity.DateLayout, s); err != nil {
		return "", apperr.Validation("due_date must be YYYY-MM-DD")
	}
	return s, nil
}

func (h *AssignmentHandler) List(w http.ResponseWriter, r *http.Request) {
	id, classID, err := h.scope.resolve(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	assignments, err := h.assignments.List(r.Context(), id.UserID, classID)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, assignments)
}

func (h *AssignmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, classID, err := h.scope.resolve(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	assignmentID, err := pathID(r, "assignmentID", "assignment")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	a, err := h.assignments.Get(r.Context(), id.UserID, classID, assignmentID)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, a)
}

func (h *AssignmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, classID, err := h.scope.resolve(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	var req createAssignmentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	text, err := required(req.Text, "text")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	due, err := dueDate(req.DueDate)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	a, err := h.assignments.Create(r.Context(), id.UserID, classID, text, due)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondJSON(w, http.StatusCreated, a)
}

func (h *AssignmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, classID, err := h.scope.resolve(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	assignmentID, err := pathID(r, "assignmentID", "assignment")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	var patch entity.AssignmentPatch
	if err := httpx.DecodeJSON(r, &patch); err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	if patch.Empty() {
		httpx.RespondError(w, r, apperr.Validation("nothing to update"))
		return
	}
	if patch.Text != nil {
		text, err := required(*patch.Text, "text")
		if err != nil {
			httpx.RespondError(w, r, err)
			return
		}
		patch.Text = &text
	}
	if patch.DueDate != nil {
		due, err := dueDate(*patch.DueDate)
		if err != nil {
			httpx.RespondError(w, r, err)
			return
		}
		patch.DueDate = &due
	}
	a, err := h.assignments.Update(r.Context(), id.UserID, classID, assignmentID, patch)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, a)
}

func (h *AssignmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, classID, err := h.scope.resolve(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	assignmentID, err := pathID(r, "assignmentID", "assignment")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	if err := h.assignments.Delete(r.Context(), id.UserID, classID, assignmentID); err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	success(w)
}
