package services

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"jvracle/models"
	"jvracle/services/logger"
)

const roomBoardKey = "rooms:board"

// GetFromRedis lấy data từ Redis, không có cache thì target giữ nguyên
func GetFromRedis(ctx context.Context, rdb *redis.Client, key string, target interface{}) error {
	cachedData, err := rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return err
	}

	if err := json.Unmarshal([]byte(cachedData), target); err != nil {
		return err
	}
	return nil
}

// SetToRedis lưu dữ liệu vào Redis
func SetToRedis(ctx context.Context, rdb *redis.Client, key string, value interface{}, ttl time.Duration) error {
	dataJSON, err := json.Marshal(value)
	if err != nil {
		return err
	}

	if err := rdb.Set(ctx, key, dataJSON, ttl).Err(); err != nil {
		return err
	}
	return nil
}

// DeleteFromRedis xóa cache Redis
func DeleteFromRedis(ctx context.Context, rdb *redis.Client, key string) error {
	if err := rdb.Del(ctx, key).Err(); err != nil {
		return err
	}
	return nil
}

// BoardCache cache bảng trạng thái phòng (room rack) trên Redis cho
// đường đọc của lễ tân; mọi thay đổi occupancy sẽ xóa cache qua hook
// SetOnChange của registry. Chỉ phục vụ đường đọc, không bao giờ nằm
// trong critical section của core.
type BoardCache struct {
	rdb      *redis.Client
	registry *RoomRegistry
	ttl      time.Duration
	log      logger.Logger
}

// NewBoardCache tạo instance mới của BoardCache
func NewBoardCache(rdb *redis.Client, registry *RoomRegistry, ttl time.Duration, log logger.Logger) *BoardCache {
	return &BoardCache{
		rdb:      rdb,
		registry: registry,
		ttl:      ttl,
		log:      log,
	}
}

// RoomBoard trả về snapshot phòng, ưu tiên lấy từ cache
func (b *BoardCache) RoomBoard(ctx context.Context) []models.Room {
	if b.rdb != nil {
		var rooms []models.Room
		if err := GetFromRedis(ctx, b.rdb, roomBoardKey, &rooms); err != nil {
			b.log.Warn("Lỗi đọc room board từ Redis: %v", err)
		} else if len(rooms) > 0 {
			return rooms
		}
	}

	rooms := b.registry.Snapshot()
	if b.rdb != nil {
		if err := SetToRedis(ctx, b.rdb, roomBoardKey, rooms, b.ttl); err != nil {
			b.log.Warn("Lỗi lưu room board vào Redis: %v", err)
		}
	}
	return rooms
}

// Invalidate xóa cache, gắn vào hook SetOnChange của registry
func (b *BoardCache) Invalidate() {
	if b.rdb == nil {
		return
	}
	if err := DeleteFromRedis(context.Background(), b.rdb, roomBoardKey); err != nil {
		b.log.Warn("Lỗi xóa cache room board: %v", err)
	}
}
