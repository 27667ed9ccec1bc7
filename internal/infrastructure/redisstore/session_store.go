package redisstore

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/helliomastic/Movie-Final-Recom/internal/application"
)

// SessionStore keeps sessions as redis hashes under user:session:<uid> with a TTL.
type SessionStore struct {
	rdb *redis.Client
}

func NewSessionStore(rdb *redis.Client) *SessionStore {
	return &SessionStore{rdb: rdb}
}

func sessionKey(userID int64) string {
	return "user:session:" + strconv.FormatInt(userID, 10)
}

func (s *SessionStore) Save(ctx context.Context, sess application.Session, ttl time.Duration) error {
	fields := map[string]any{
		"user_id":    sess.UserID,
		"email":      sess.Email,
		"name":       sess.Name,
		"sid":        sess.SID,
		"created_at": sess.CreatedAt.Format(time.RFC3339Nano),
	}
	key := sessionKey(sess.UserID)
	pipe := s.rdb.Pipeline()
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *SessionStore) Get(ctx context.Context, userID int64) (*application.Session, error) {
	data, err := s.rdb.HGetAll(ctx, sessionKey(userID)).Result()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	uid, _ := strconv.ParseInt(data["user_id"], 10, 64)
	created, _ := time.Parse(time.RFC3339Nano, data["created_at"])
	return &application.Session{
		UserID:    uid,
		Email:     data["email"],
		Name:      data["name"],
		SID:       data["sid"],
		CreatedAt: created,
	}, nil
}

func (s *SessionStore) Delete(ctx context.Context, userID int64) error {
	return s.rdb.Del(ctx, sessionKey(userID)).Err()
}

var _ application.SessionStore = (*SessionStore)(nil)
