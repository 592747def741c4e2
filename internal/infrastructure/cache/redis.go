package cache

import (
	"github.com/redis/rueidis"
)

// NewRedisClient connects to Redis. The caller decides whether a
// failure is fatal; the cache is an optional layer.
func NewRedisClient(addr string) (rueidis.Client, error) {
	return rueidis.NewClient(
		rueidis.ClientOption{
			InitAddress: []string{addr},
		},
	)
}
