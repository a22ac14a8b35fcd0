package cart

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/EquestrianHub/internal/domain"
)

const keyPrefix = "cart:"

// RedisStore корзина в hash `cart:{userID}`: поле = productId, значение = количество.
// TTL продлевается при каждой записи
type RedisStore struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisStore(rdb redis.Cmdable, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func key(userID int64) string {
	return keyPrefix + strconv.FormatInt(userID, 10)
}

// Lines строки корзины по возрастанию productId
func (s *RedisStore) Lines(ctx context.Context, userID int64) ([]domain.CartLine, error) {
	values, err := s.rdb.HGetAll(ctx, key(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: Lines - hgetall: %v", ErrReadCart, err)
	}

	lines := make([]domain.CartLine, 0, len(values))
	for field, raw := range values {
		productID, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			continue
		}
		qty, err := strconv.Atoi(raw)
		if err != nil || qty <= 0 {
			continue
		}
		lines = append(lines, domain.CartLine{ProductID: productID, Quantity: qty})
	}

	sort.Slice(lines, func(i, j int) bool { return lines[i].ProductID < lines[j].ProductID })
	return lines, nil
}

// Add увеличивает количество товара и возвращает новое значение
func (s *RedisStore) Add(ctx context.Context, userID, productID int64, delta int) (int, error) {
	k := key(userID)
	field := strconv.FormatInt(productID, 10)

	var incr *redis.IntCmd
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.HIncrBy(ctx, k, field, int64(delta))
		pipe.Expire(ctx, k, s.ttl)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: Add - hincrby: %v", ErrWriteCart, err)
	}

	return int(incr.Val()), nil
}

// Set задает количество, qty <= 0 удаляет строку
func (s *RedisStore) Set(ctx context.Context, userID, productID int64, qty int) error {
	if qty <= 0 {
		return s.Remove(ctx, userID, productID)
	}

	k := key(userID)
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, k, strconv.FormatInt(productID, 10), qty)
		pipe.Expire(ctx, k, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: Set - hset: %v", ErrWriteCart, err)
	}
	return nil
}

func (s *RedisStore) Remove(ctx context.Context, userID, productID int64) error {
	if err := s.rdb.HDel(ctx, key(userID), strconv.FormatInt(productID, 10)).Err(); err != nil {
		return fmt.Errorf("%w: Remove - hdel: %v", ErrWriteCart, err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context, userID int64) error {
	if err := s.rdb.Del(ctx, key(userID)).Err(); err != nil {
		return fmt.Errorf("%w: Clear - del: %v", ErrWriteCart, err)
	}
	return nil
}
