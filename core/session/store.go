package session

import (
	"sync"
	"time"

	"github.com/dgrijalva/jwt-go"

	"github.com/everyedu/portal/core"
	"github.com/everyedu/portal/storage/state"
)

// Store owns the current session and mirrors it to durable storage so it
// survives a client restart. If storage fails the store degrades to
// memory-only operation (session lost on restart) instead of failing the
// caller; the degradation is logged once.
type Store struct {
	mu       sync.RWMutex
	storage  state.Storage
	log      core.Logger
	current  Session
	degraded bool
}

func NewStore(storage state.Storage, log core.Logger) *Store {
	return &Store{storage: storage, log: log}
}

// Restore consults durable storage and returns the session found there, if
// any. A persisted token that has already expired is discarded (and the stale
// state cleared) rather than restored.
func (st *Store) Restore() Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	values, err := st.storage.ReadAll()
	if err != nil {
		st.degrade("session restore failed", err)
		return st.current
	}

	sess := Session{
		Token:    values[state.KeyAccessToken],
		UserID:   values[state.KeyUserID],
		Role:     values[state.KeyRole],
		Username: values[state.KeyUsername],
	}
	if sess.IsAnonymous() {
		return st.current
	}
	if tokenExpired(sess.Token) {
		if err := st.storage.Clear(); err != nil {
			st.log.Warn("clearing expired session", err)
		}
		return st.current
	}
	st.current = sess
	return st.current
}

// Set replaces the session wholesale and persists it. Callers never observe
// a state where the token is set but the role is not.
func (st *Store) Set(sess Session) {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.current = sess
	if st.degraded {
		return
	}
	err := st.storage.WriteAll(map[string]string{
		state.KeyAccessToken: sess.Token,
		state.KeyUserID:      sess.UserID,
		state.KeyRole:        sess.Role,
		state.KeyUsername:    sess.Username,
	})
	if err != nil {
		st.degrade("session persist failed", err)
	}
}

// Get returns the current snapshot; the zero Session means anonymous.
func (st *Store) Get() Session {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.current
}

// Clear removes the session everywhere. Safe to call repeatedly.
func (st *Store) Clear() {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.current = Session{}
	if st.degraded {
		return
	}
	if err := st.storage.Clear(); err != nil {
		st.degrade("session clear failed", err)
	}
}

// degrade switches to memory-only operation. Documented behavior: the session
// still works for this run but will not survive a restart.
func (st *Store) degrade(msg string, err error) {
	if !st.degraded {
		st.log.Warn(msg+"; continuing with in-memory session only", err)
	}
	st.degraded = true
}

// tokenExpired inspects the exp claim of a JWT without verifying the
// signature (the client has no key; the backend remains authoritative).
// Opaque or claimless tokens are passed through untouched.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return false
	}
	return time.Now().After(time.Unix(int64(exp), 0))
}
