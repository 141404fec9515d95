package handler

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"classroom/internal/apperr"
	"classroom/internal/entity"
	"classroom/internal/repository"
	"classroom/internal/session"
)

const validCode = "123456"

type fakeAuth struct {
	mu       sync.Mutex
	users    map[string]uuid.UUID
	sentTo   []string
	signOuts int
}

func newFakeAuth() *fakeAuth {
	return &fakeAuth{users: map[string]uuid.UUID{}}
}

func (a *fakeAuth) userID(email string) uuid.UUID {
	a.mu.Lock()
	defer a.mu.Unlock()
	id, ok := a.users[email]
	if !ok {
		id = uuid.New()
		a.users[email] = id
	}
	return id
}

func (a *fakeAuth) SendCode(_ context.Context, email string) error {
	if email == "" {
		return apperr.Validation("email is required")
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sentTo = append(a.sentTo, email)
	return nil
}

func (a *fakeAuth) VerifyCode(_ context.Context, email, code string) (session.Identity, error) {
	if code != validCode {
		return session.Identity{}, apperr.Unauthorized("invalid code")
	}
	return session.Identity{
		UserID:       a.userID(email),
		Email:        email,
		AccessToken:  "access-" + email,
		RefreshToken: "refresh-" + email,
	}, nil
}

func (a *fakeAuth) Rehydrate(_ context.Context, id session.Identity) (session.Identity, bool, error) {
	return id, false, nil
}

func (a *fakeAuth) SignOut(context.Context, session.Identity) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.signOuts++
	return nil
}

// memStore is an in-memory repository.Store with the same ownership rules as
// the real backends.
type memStore struct {
	mu          sync.Mutex
	clock       time.Time
	classes     map[uuid.UUID]entity.Class
	todos       map[uuid.UUID]entity.Todo
	assignments map[uuid.UUID]entity.Assignment
}

func newMemStore() *memStore {
	return &memStore{
		clock:       time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC),
		classes:     map[uuid.UUID]entity.Class{},
		todos:       map[uuid.UUID]entity.Todo{},
		assignments: map[uuid.UUID]entity.Assignment{},
	}
}

func (m *memStore) store() repository.Store {
	return repository.Store{
		Classes:     memClasses{m},
		Todos:       memTodos{m},
		Assignments: memAssignments{m},
	}
}

func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

type memClasses struct{ m *memStore }

func (r memClasses) List(_ context.Context, userID uuid.UUID) ([]entity.Class, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := make([]entity.Class, 0)
	for _, c := range r.m.classes {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r memClasses) Get(_ context.Context, userID, id uuid.UUID) (entity.Class, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c, ok := r.m.classes[id]
	if !ok || c.UserID != userID {
		return entity.Class{}, apperr.NotFound("class not found")
	}
	return c, nil
}

func (r memClasses) Create(_ context.Context, userID uuid.UUID, name string) (entity.Class, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c := entity.Class{ID: uuid.New(), UserID: userID, Name: name, CreatedAt: r.m.tick()}
	r.m.classes[c.ID] = c
	return c, nil
}

func (r memClasses) Update(ctx context.Context, userID, id uuid.UUID, name string) (entity.Class, error) {
	c, err := r.Get(ctx, userID, id)
	if err != nil {
		return entity.Class{}, err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c.Name = name
	r.m.classes[id] = c
	return c, nil
}

func (r memClasses) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := r.Get(ctx, userID, id); err != nil {
		return err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	delete(r.m.classes, id)
	for tid, t := range r.m.todos {
		if t.ClassID == id {
			delete(r.m.todos, tid)
		}
	}
	for aid, a := range r.m.assignments {
		if a.ClassID == id {
			delete(r.m.assignments, aid)
		}
	}
	return nil
}

type memTodos struct{ m *memStore }

func (r memTodos) List(_ context.Context, userID, classID uuid.UUID) ([]entity.Todo, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := make([]entity.Todo, 0)
	for _, t := range r.m.todos {
		if t.UserID == userID && t.ClassID == classID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Important != out[j].Important {
			return out[i].Important
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r memTodos) Get(_ context.Context, userID, classID, id uuid.UUID) (entity.Todo, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	t, ok := r.m.todos[id]
	if !ok || t.UserID != userID || t.ClassID != classID {
		return entity.Todo{}, apperr.NotFound("todo not found")
	}
	return t, nil
}

func (r memTodos) Create(_ context.Context, userID, classID uuid.UUID, text string, important bool) (entity.Todo, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	t := entity.Todo{ID: uuid.New(), ClassID: classID, UserID: userID, Text: text, Important: important, CreatedAt: r.m.tick()}
	r.m.todos[t.ID] = t
	return t, nil
}

func (r memTodos) Update(ctx context.Context, userID, classID, id uuid.UUID, patch entity.TodoPatch) (entity.Todo, error) {
	t, err := r.Get(ctx, userID, classID, id)
	if err != nil {
		return entity.Todo{}, err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if patch.Text != nil {
		t.Text = *patch.Text
	}
	if patch.Done != nil {
		t.Done = *patch.Done
	}
	if patch.Important != nil {
		t.Important = *patch.Important
	}
	r.m.todos[id] = t
	return t, nil
}

func (r memTodos) Delete(ctx context.Context, userID, classID, id uuid.UUID) error {
	if _, err := r.Get(ctx, userID, classID, id); err != nil {
		return err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	delete(r.m.todos, id)
	return nil
}

type memAssignments struct{ m *memStore }

func (r memAssignments) List(_ context.Context, userID, classID uuid.UUID) ([]entity.Assignment, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := make([]entity.Assignment, 0)
	for _, a := range r.m.assignments {
		if a.UserID == userID && a.ClassID == classID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r memAssignments) Get(_ context.Context, userID, classID, id uuid.UUID) (entity.Assignment, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	a, ok := r.m.assignments[id]
	if !ok || a.UserID != userID || a.ClassID != classID {
		return entity.Assignment{}, apperr.NotFound("assignment not found")
	}
	return a, nil
}

func (r memAssignments) Create(_ context.Context, userID, classID uuid.UUID, text, dueDate string) (entity.Assignment, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	a := entity.Assignment{ID: uuid.New(), ClassID: classID, UserID: userID, Text: text, DueDate: dueDate, UpdatedAt: r.m.tick()}
	r.m.assignments[a.ID] = a
	return a, nil
}

func (r memAssignments) Update(ctx context.Context, userID, classID, id uuid.UUID, patch entity.AssignmentPatch) (entity.Assignment, error) {
	a, err := r.Get(ctx, userID, classID, id)
	if err != nil {
		return entity.Assignment{}, err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if patch.Text != nil {
		a.Text = *patch.Text
	}
	if patch.DueDate != nil {
		a.DueDate = *patch.DueDate
	}
	if patch.Done != nil {
		a.Done = *patch.Done
	}
	a.UpdatedAt = r.m.tick()
	r.m.assignments[id] = a
	return a, nil
}

func (r memAssignments) Delete(ctx context.Context, userID, classID, id uuid.UUID) error {
	if _, err := r.Get(ctx, userID, classID, id); err != nil {
		return err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	delete(r.m.assignments, id)
	return nil
}
