package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore guarda as sessões no Redis, com TTL. É o store usado quando
// REDIS_ADDR está configurado — sobrevive a restart do serviço.
type RedisStore struct{ R *redis.Client }

func NewRedisStore(r *redis.Client) *RedisStore { return &RedisStore{R: r} }

func key(token string) string { return "session:" + token }

func (s *RedisStore) Put(ctx context.Context, token string, sess Session, ttl time.Duration) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.R.Set(ctx, key(token), b, ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, token string) (Session, bool, error) {
	b, err := s.R.Get(ctx, key(token)).Bytes()
	if err == redis.Nil {
		return Session{}, false, nil
	}
	if err != nil {
		return Session{}, false, err
	}
	var sess Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return Session{}, false, err
	}
	return sess, true, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	return s.R.Del(ctx, key(token)).Err()
}
