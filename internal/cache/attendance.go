package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CountMiss 快取未命中時的回傳值，呼叫端應回退到資料庫
const CountMiss = -1

// 計數快取保留時間，過期後下次讀取重建
const attendanceTTL = 10 * time.Minute

// RedisAttendanceManager 活動報名人數的 Redis 計數快取。
// 權威資料在資料庫，這裡只是 cache-aside 的加速層。
type RedisAttendanceManager interface {
	// 獲取：活動目前報名人數，未命中回傳 CountMiss
	GetCount(ctx context.Context, eventID int) (int, error)
	// 回填：資料庫查得的人數寫入快取
	SetCount(ctx context.Context, eventID int, count int) error
	// 調整：確認/取消報名時增減人數 (Lua 確保只調整存在的 key)
	AdjustCount(ctx context.Context, eventID int, delta int) error
	// 失效：活動刪除時移除計數
	InvalidateCount(ctx context.Context, eventID int) error
}

type RedisAttendanceManagerImpl struct {
	client *redis.Client
}

func NewRedisAttendanceManager(client *redis.Client) RedisAttendanceManager {
	return &RedisAttendanceManagerImpl{
		client: client,
	}
}

// 報名人數 key
func (m *RedisAttendanceManagerImpl) getCountKey(eventID int) string {
	return fmt.Sprintf("event:%d:attendees", eventID)
}

func (m *RedisAttendanceManagerImpl) GetCount(ctx context.Context, eventID int) (int, error) {
	key := m.getCountKey(eventID)
	val, err := m.client.Get(ctx, key).Int()
	if err == redis.Nil {
		return CountMiss, nil
	}
	if err != nil {
		return CountMiss, err
	}
	return val, nil
}

func (m *RedisAttendanceManagerImpl) SetCount(ctx context.Context, eventID int, count int) error {
	key := m.getCountKey(eventID)
	return m.client.Set(ctx, key, count, attendanceTTL).Err()
}

func (m *RedisAttendanceManagerImpl) AdjustCount(ctx context.Context, eventID int, delta int) error {
	key := m.getCountKey(eventID)

	// 只調整存在的 key，避免把過期的計數從 delta 重建成錯誤值
	script := `
		if redis.call('EXISTS', KEYS[1]) == 1 then
			return redis.call('INCRBY', KEYS[1], ARGV[1])
		end
		return -1
	`

	return m.client.Eval(ctx, script, []string{key}, delta).Err()
}

func (m *RedisAttendanceManagerImpl) InvalidateCount(ctx context.Context, eventID int) error {
	key := m.getCountKey(eventID)
	return m.client.Del(ctx, key).Err()
}
