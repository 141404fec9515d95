package handler

import (
	"net/http"

	"classroom/internal/httpx"
	"classroom/internal/repository"
)

type ClassHandler struct {
	classes repository.ClassRepository
}

func NewClassHandler(classes repository.ClassRepository) *ClassHandler {
	return &ClassHandler{classes: classes}
}

type classRequest struct {
	Name string `json:"name"`
}

func (h *ClassHandler) List(w http.ResponseWriter, r *http.Request) {
	id, err := caller(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	classes, err := h.classes.List(r.Context(), id.UserID)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, classes)
}

func (h *ClassHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := caller(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	classID, err := pathID(r, "classID", "class")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	class, err := h.classes.Get(r.Context(), id.UserID, classID)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, class)
}

func (h *ClassHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, err := caller(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	var req classRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	name, err := required(req.Name, "name")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	class, err := h.classes.Create(r.Context(), id.UserID, name)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondJSON(w, http.StatusCreated, class)
}

func (h *ClassHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := caller(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	classID, err := pathID(r, "classID", "class")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	var req classRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	name, err := required(req.Name, "name")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	class, err := h.classes.Update(r.Context(), id.UserID, classID, name)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, class)
}

// Delete removes the class together with its todos and assignments.
func (h *ClassHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := caller(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	classID, err := pathID(r, "classID", "class")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	if err := h.classes.Delete(r.Context(), id.UserID, classID); err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	success(w)
}
