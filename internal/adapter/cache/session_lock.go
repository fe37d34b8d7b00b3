package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// releaseSource deletes key only when it still holds the caller's owner value.
const releaseSource = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`

var releaseScript = redis.NewScript(releaseSource)

type SessionLock struct {
	client *redis.Client
}

func NewSessionLock(client *redis.Client) *SessionLock {
	return &SessionLock{client: client}
}

// Acquire reports false when another owner already holds key. The lock
// disappears on its own after ttl if the holder dies without releasing it.
func (l *SessionLock) Acquire(ctx context.Context, key, owner string, ttl time.Duration) (bool, error) {
	ok, err := l.client.SetNX(ctx, key, owner, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("setnx %s: %w", key, err)
	}

	return ok, nil
}

// Release is a no-op when the lock expired and another owner took it over.
func (l *SessionLock) Release(ctx context.Context, key, owner string) error {
	if err := releaseScript.Eval(ctx, l.client, []string{key}, owner).Err(); err != nil {
		return fmt.Errorf("release %s: %w", key, err)
	}

	return nil
}
