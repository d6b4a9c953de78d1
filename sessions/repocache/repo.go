package repocache

import (
	"encoding/json"
	"time"

	"github.com/allegro/bigcache/v3"
	"github.com/jrsteele09/go-session-auth/sessions"
	"github.com/pkg/errors"
)

var _ sessions.Repo = (*CacheSessionRepo)(nil)

// CacheSessionRepo keeps sessions in a bigcache instance whose life window
// matches the session TTL, so storage-side eviction and logical expiry agree.
// The Manager still checks ExpiresAt itself; the cache window is a backstop
// that keeps abandoned sessions from accumulating.
type CacheSessionRepo struct {
	cache *bigcache.BigCache
}

func NewCacheSessionRepo(lifeWindow time.Duration) (*CacheSessionRepo, error) {
	cache, err := bigcache.NewBigCache(bigcache.DefaultConfig(lifeWindow))
	if err != nil {
		return nil, errors.Wrap(err, "[NewCacheSessionRepo] create cache")
	}
	return &CacheSessionRepo{cache: cache}, nil
}

func (r *CacheSessionRepo) Upsert(token string, session sessions.Session) error {
	buf, err := json.Marshal(session)
	if err != nil {
		return errors.Wrap(err, "[Upsert] encode session")
	}
	return r.cache.Set(token, buf)
}

func (r *CacheSessionRepo) Get(token string) (sessions.Session, error) {
	buf, err := r.cache.Get(token)
	if errors.Is(err, bigcache.ErrEntryNotFound) {
		return sessions.Session{}, sessions.SessionNotFoundErr
	}
	if err != nil {
		return sessions.Session{}, errors.Wrap(err, "[Get] cache lookup")
	}

	var session sessions.Session
	if err := json.Unmarshal(buf, &session); err != nil {
		return sessions.Session{}, errors.Wrap(err, "[Get] decode session")
	}
	return session, nil
}

func (r *CacheSessionRepo) Delete(token string) error {
	err := r.cache.Delete(token)
	if errors.Is(err, bigcache.ErrEntryNotFound) {
		return nil
	}
	return err
}

// DeleteExpired is a no-op: entries fall out of the cache once the life
// window passes.
func (r *CacheSessionRepo) DeleteExpired(before time.Time) error {
	return nil
}
