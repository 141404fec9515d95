package session

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const DefaultCookieName = "classroom_session"

const (
	keyUserID       = "user_id"
	keyEmail        = "email"
	keyAccessToken  = "access_token"
	keyRefreshToken = "refresh_token"
)

// Manager reads and writes the signed-in identity on the session cookie.
type Manager struct {
	store sessions.Store
	name  string
}

func NewManager(store sessions.Store, name string) *Manager {
	if name == "" {
		name = DefaultCookieName
	}
	return &Manager{store: store, name: name}
}

// Load returns the identity stored in the request's session. ok is false when
// there is no session or it has no user id.
func (m *Manager) Load(r *http.Request) (Identity, bool) {
	sess, err := m.store.Get(r, m.name)
	if err != nil || sess.IsNew {
		return Identity{}, false
	}
	raw, _ := sess.Values[keyUserID].(string)
	userID, err := uuid.Parse(raw)
	if err != nil || userID == uuid.Nil {
		return Identity{}, false
	}

	id := Identity{UserID: userID}
	id.Email, _ = sess.Values[keyEmail].(string)
	id.AccessToken, _ = sess.Values[keyAccessToken].(string)
	id.RefreshToken, _ = sess.Values[keyRefreshToken].(string)
	return id, true
}

// HasAccessToken reports whether the session holds an access token.
func (m *Manager) HasAccessToken(r *http.Request) bool {
	sess, err := m.store.Get(r, m.name)
	if err != nil {
		return false
	}
	token, _ := sess.Values[keyAccessToken].(string)
	return token != ""
}

// Start stores id in a fresh session, dropping anything the old one held.
func (m *Manager) Start(w http.ResponseWriter, r *http.Request, id Identity) error {
	sess, _ := m.store.Get(r, m.name)
	sess.ID = ""
	sess.Values = make(map[interface{}]interface{})
	set(sess, id)
	return sess.Save(r, w)
}

// Save updates the stored tokens, for example after a refresh.
func (m *Manager) Save(w http.ResponseWriter, r *http.Request, id Identity) error {
	sess, _ := m.store.Get(r, m.name)
	set(sess, id)
	return sess.Save(r, w)
}

// Clear destroys the session and expires the cookie.
func (m *Manager) Clear(w http.ResponseWriter, r *http.Request) error {
	sess, _ := m.store.Get(r, m.name)
	sess.Values = make(map[interface{}]interface{})
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

func set(sess *sessions.Session, id Identity) {
	sess.Values[keyUserID] = id.UserID.String()
	sess.Values[keyEmail] = id.Email
	sess.Values[keyAccessToken] = id.AccessToken
	sess.Values[keyRefreshToken] = id.RefreshToken
}
