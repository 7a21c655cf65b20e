package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// ConnectRedis opens a client and checks it answers PING.
func ConnectRedis(ctx context.Context, opts RedisOptions) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}
	return client, nil
}

// RedisNotifier publishes cart events on "cart:<session>" channels so every
// instance behind the load balancer can push them to its websockets. No cart
// data is stored in Redis.
type RedisNotifier struct {
	client *redis.Client
	log    *zap.Logger
}

func NewRedisNotifier(client *redis.Client, log *zap.Logger) *RedisNotifier {
	return &RedisNotifier{client: client, log: log}
}

func cartChannel(sessionID string) string { return "cart:" + sessionID }

func (n *RedisNotifier) Publish(ctx context.Context, sessionID, event string) error {
	return n.client.Publish(ctx, cartChannel(sessionID), event).Err()
}

func (n *RedisNotifier) Subscribe(ctx context.Context, sessionID string) (<-chan string, func()) {
	ctx, stop := context.WithCancel(ctx)
	pubsub := n.client.Subscribe(ctx, cartChannel(sessionID))
	out := make(chan string, 8)

	go func() {
		defer close(out)
		defer pubsub.Close()
		msgs := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				select {
				case out <- msg.Payload:
				default:
					n.log.Debug("dropping cart event for slow subscriber", zap.String("session", sessionID))
				}
			}
		}
	}()

	var once sync.Once
	return out, func() { once.Do(stop) }
}

type RedisBlacklist struct {
	client *redis.Client
	log    *zap.Logger
}

func NewRedisBlacklist(client *redis.Client, log *zap.Logger) *RedisBlacklist {
	return &RedisBlacklist{client: client, log: log}
}

func (b *RedisBlacklist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	return b.client.Set(ctx, "blacklist:"+tokenID, "revoked", ttl).Err()
}

func (b *RedisBlacklist) IsRevoked(ctx context.Context, tokenID string) bool {
	n, err := b.client.Exists(ctx, "blacklist:"+tokenID).Result()
	if err != nil {
		b.log.Warn("⚠️ blacklist lookup failed", zap.Error(err))
		return false
	}
	return n > 0
}
