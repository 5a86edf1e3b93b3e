package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	lockTTL       = 5 * time.Second
	lockWait      = 2 * time.Second
	lockRetryStep = 50 * time.Millisecond
)

// ErrLockNotAcquired is returned when the per-property mutex could not be
// taken within the wait budget. Callers present it as a date conflict: if
// someone is holding the lock, they are booking these dates right now.
var ErrLockNotAcquired = errors.New("booking lock not acquired")

// releaseScript deletes the lock key only when it still holds our token, so
// an expired lock reclaimed by another request is never released from here.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// PropertyLock serializes the availability-check/insert pair per property
// across all API instances. SetNX with a TTL keeps a crashed holder from
// blocking the property forever.
type PropertyLock struct {
	client *redis.Client
}

func NewPropertyLock(client *redis.Client) *PropertyLock {
	return &PropertyLock{client: client}
}

// Acquire takes the property mutex, polling until lockWait elapses. The
// returned release function is safe to defer.
func (l *PropertyLock) Acquire(ctx context.Context, propertyID string) (func(), error) {
	key := l.key(propertyID)
	token := uuid.NewString()
	deadline := time.Now().Add(lockWait)

	for {
		ok, err := l.client.SetNX(ctx, key, token, lockTTL).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire booking lock: %w", err)
		}
		if ok {
			return func() {
				releaseCtx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
				defer cancel()
				_ = releaseScript.Run(releaseCtx, l.client, []string{key}, token).Err()
			}, nil
		}

		if time.Now().After(deadline) {
			return nil, ErrLockNotAcquired
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockRetryStep):
		}
	}
}

func (l *PropertyLock) key(propertyID string) string {
	return "lock:booking:" + propertyID
}
