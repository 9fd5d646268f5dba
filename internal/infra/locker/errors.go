package locker

import "errors"

var (
	// ErrLockNotOwned возвращается при попытке снять блокировку, взятую другим клиентом
	ErrLockNotOwned = errors.New("locker: lock not owned by this client")

	// ErrRedis возвращается при ошибке обращения к Redis
	ErrRedis = errors.New("locker: redis error")
)
