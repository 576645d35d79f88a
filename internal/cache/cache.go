package cache

import "time"

// Cache - общий интерфейс кеша. Один экземпляр на процесс, слои различаются префиксом ключа.
type Cache interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{}, ttl time.Duration)
	Delete(key string)
}

// Key собирает ключ вида "<namespace>:<key>".
func Key(namespace, key string) string {
	return namespace + ":" + key
}
