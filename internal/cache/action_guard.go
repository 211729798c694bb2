package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// 同一 (user, event, action) 的防重窗口
const guardTTL = 10 * time.Second

// ActionGuard 防止同一使用者對同一活動重複送出同一動作。
// SET NX 取得的鎖在動作完成後釋放，逾時自動過期。
type ActionGuard interface {
	// 嘗試取得鎖，回傳 false 代表同一動作仍在處理中
	Acquire(ctx context.Context, userID, eventID int, action string) (bool, error)
	// 動作完成後釋放鎖
	Release(ctx context.Context, userID, eventID int, action string) error
}

type RedisActionGuardImpl struct {
	client *redis.Client
}

func NewRedisActionGuard(client *redis.Client) ActionGuard {
	return &RedisActionGuardImpl{
		client: client,
	}
}

func (g *RedisActionGuardImpl) getGuardKey(userID, eventID int, action string) string {
	return fmt.Sprintf("guard:%d:%d:%s", userID, eventID, action)
}

func (g *RedisActionGuardImpl) Acquire(ctx context.Context, userID, eventID int, action string) (bool, error) {
	key := g.getGuardKey(userID, eventID, action)
	return g.client.SetNX(ctx, key, 1, guardTTL).Result()
}

func (g *RedisActionGuardImpl) Release(ctx context.Context, userID, eventID int, action string) error {
	key := g.getGuardKey(userID, eventID, action)
	return g.client.Del(ctx, key).Err()
}
