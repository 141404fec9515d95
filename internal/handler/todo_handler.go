package handler

import (
	"net/http"

	"classroom/internal/apperr"
	"classroom/internal/entity"
	"classroom/internal/httpx"
	"classroom/internal/repository"
)

type TodoHandler struct {
	scope classScope
	todos repository.TodoRepository
}

func NewTodoHandler(classes repository.ClassRepository, todos repository.TodoRepository) *TodoHandler {
	return &TodoHandler{scope: classScope{classes: classes}, todos: todos}
}

type createTodoRequest struct {
	Text      string `json:"text"`
	Important bool   `json:"important"`
}

func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	id, classID, err := h.scope.resolve(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	todos, err := h.todos.List(r.Context(), id.UserID, classID)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, todos)
}

func (h *TodoHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, classID, err := h.scope.resolve(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	todoID, err := pathID(r, "todoID", "todo")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	todo, err := h.todos.Get(r.Context(), id.UserID, classID, todoID)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, todo)
}

func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, classID, err := h.scope.resolve(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	var req createTodoRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	text, err := required(req.Text, "text")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	todo, err := h.todos.Create(r.Context(), id.UserID, classID, text, req.Important)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondJSON(w, http.StatusCreated, todo)
}

func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, classID, err := h.scope.resolve(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	todoID, err := pathID(r, "todoID", "todo")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	var patch entity.TodoPatch
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
	todo, err := h.todos.Update(r.Context(), id.UserID, classID, todoID, patch)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, todo)
}

func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, classID, err := h.scope.resolve(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	todoID, err := pathID(r, "todoID", "todo")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	if err := h.todos.Delete(r.Context(), id.UserID, classID, todoID); err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	success(w)
}
