package locker

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const doctorKeyPrefix = "appointments:doctor:"

// unlockScript удаляет ключ, только если в нём лежит наш токен
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// DoctorKey ключ блокировки расписания врача
func DoctorKey(doctorID int64) string {
	return doctorKeyPrefix + strconv.FormatInt(doctorID, 10)
}

// RedisLocker распределённая блокировка на SET NX PX
type RedisLocker struct {
	client redis.UniversalClient
}

// NewRedisLocker создает блокировщик поверх клиента Redis
func NewRedisLocker(client redis.UniversalClient) *RedisLocker {
	return &RedisLocker{client: client}
}

// TryLock пытается взять блокировку key на ttl
// Возвращает токен владельца, который нужно передать в Unlock. acquired == false - ключ уже занят.
func (l *RedisLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (token string, acquired bool, err error) {
	token = uuid.NewString()

	acquired, err = l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("%w: TryLock %s: %v", ErrRedis, key, err)
	}
	if !acquired {
		return "", false, nil
	}

	return token, true, nil
}

// Unlock снимает блокировку, если она всё ещё принадлежит token
// Истёкшая блокировка не считается ошибкой.
func (l *RedisLocker) Unlock(ctx context.Context, key, token string) error {
	deleted, err := unlockScript.Run(ctx, l.client, []string{key}, token).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("%w: Unlock %s: %v", ErrRedis, key, err)
	}
	if deleted == 0 {
		exists, err := l.client.Exists(ctx, key).Result()
		if err != nil {
			return fmt.Errorf("%w: Unlock %s: %v", ErrRedis, key, err)
		}
		if exists > 0 {
			return ErrLockNotOwned
		}
	}
	return nil
}

// NoopLocker используется, когда Redis выключен в конфиге
// Защиту от двойной записи в этом случае обеспечивают транзакция и уникальный индекс.
type NoopLocker struct{}

func (NoopLocker) TryLock(_ context.Context, _ string, _ time.Duration) (string, bool, error) {
	return "", true, nil
}

func (NoopLocker) Unlock(_ context.Context, _, _ string) error {
	return nil
}

// Locker блокировка расписания (RedisLocker или NoopLocker)
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (token string, acquired bool, err error)
	Unlock(ctx context.Context, key, token string) error
}

type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// LockDoctor берёт блокировку расписания врача для операции op
// ok == false - блокировку держит другой запрос. При ошибке Redis запись продолжается без блокировки.
// release нужно вызвать после завершения транзакции.
func LockDoctor(ctx context.Context, l Locker, doctorID int64, ttl time.Duration, log Logger, op string) (release func(), ok bool) {
	key := DoctorKey(doctorID)

	token, acquired, err := l.TryLock(ctx, key, ttl)
	if err != nil {
		log.Error("%s: failed to acquire lock %s, continuing without it: %v", op, key, err)
		return func() {}, true
	}
	if !acquired {
		log.Warn("%s: lock %s is held by another request", op, key)
		return nil, false
	}

	return func() {
		if err := l.Unlock(context.WithoutCancel(ctx), key, token); err != nil {
			log.Warn("%s: failed to release lock %s: %v", op, key, err)
		}
	}, true
}
