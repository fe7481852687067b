package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"

	"github.com/houseping/internal/constants"
)

// SessionOptions configures the session cookie
type SessionOptions struct {
	Secure bool
	MaxAge time.Duration
}

// SessionStore is an encrypted, signed cookie session store.
// Its keys are generated when the store is created and are never persisted,
// so cookies issued by a previous process are rejected.
type SessionStore struct {
	store *sessions.CookieStore
}

// NewSessionStore creates a store with a fresh 64-byte hash key and 32-byte AES key
func NewSessionStore(opts SessionOptions) (*SessionStore, error) {
	hashKey := securecookie.GenerateRandomKey(64)
	blockKey := securecookie.GenerateRandomKey(32)
	if hashKey == nil || blockKey == nil {
		return nil, errors.New("failed to generate session keys")
	}

	store := sessions.NewCookieStore(hashKey, blockKey)
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if opts.MaxAge > 0 {
		// sets both the cookie Max-Age and the codec's timestamp check
		store.MaxAge(int(opts.MaxAge.Seconds()))
	}

	return &SessionStore{store: store}, nil
}

// Get returns the request's session. A missing, tampered or foreign cookie yields a
// fresh empty session together with the decode error; the session is usable either way.
func (s *SessionStore) Get(r *http.Request) (*sessions.Session, error) {
	return s.store.Get(r, constants.SessionName)
}

// Save writes the session cookie to the response
func (s *SessionStore) Save(r *http.Request, w http.ResponseWriter, session *sessions.Session) error {
	return s.store.Save(r, w, session)
}

// SetUser marks the session as logged in
func SetUser(session *sessions.Session, userID, provider string) {
	session.Values[constants.SessionKeyUserID] = userID
	session.Values[constants.SessionKeyProvider] = provider
}

// UserID returns the logged-in user, if any
func UserID(session *sessions.Session) (string, bool) {
	if session == nil {
		return "", false
	}
	userID, ok := session.Values[constants.SessionKeyUserID].(string)
	return userID, ok && userID != ""
}

// SetOAuthState remembers a pending login's state and PKCE verifier
func SetOAuthState(session *sessions.Session, state, verifier string, now time.Time) {
	session.Values[constants.SessionKeyOAuthState] = state
	session.Values[constants.SessionKeyOAuthVerify] = verifier
	session.Values[constants.SessionKeyOAuthStarted] = now.Unix()
}

// TakeOAuthState removes the pending login from the session and returns it.
// ok is false when there is none or it is older than constants.OAuthStateTTL.
func TakeOAuthState(session *sessions.Session, now time.Time) (state, verifier string, ok bool) {
	state, _ = session.Values[constants.SessionKeyOAuthState].(string)
	verifier, _ = session.Values[constants.SessionKeyOAuthVerify].(string)
	started, _ := session.Values[constants.SessionKeyOAuthStarted].(int64)

	delete(session.Values, constants.SessionKeyOAuthState)
	delete(session.Values, constants.SessionKeyOAuthVerify)
	delete(session.Values, constants.SessionKeyOAuthStarted)

	if state == "" || verifier == "" {
		return "", "", false
	}
	if now.Sub(time.Unix(started, 0)) > constants.OAuthStateTTL {
		return "", "", false
	}
	return state, verifier, true
}

// Clear drops all values and expires the cookie on the next save
func Clear(session *sessions.Session) {
	for key := range session.Values {
		delete(session.Values, key)
	}
	session.Options.MaxAge = -1
}
