package redis

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotInitialized 客户端尚未建立连接
var ErrNotInitialized = errors.New("redis 客户端未初始化")

func client() (*redis.Client, error) {
	if Rdb == nil {
		return nil, ErrNotInitialized
	}
	return Rdb, nil
}

// SetWithExpiration 设置键值对并设置过期时间
func SetWithExpiration(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	rdb, err := client()
	if err != nil {
		return err
	}
	return rdb.Set(ctx, key, value, expiration).Err()
}

// GetValue 获取字符串类型的值
func GetValue(ctx context.Context, key string) (string, error) {
	rdb, err := client()
	if err != nil {
		return "", err
	}
	value, err := rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

// GetInt64 获取整数类型的值，缓存未命中时返回错误
func GetInt64(ctx context.Context, key string) (int64, error) {
	rdb, err := client()
	if err != nil {
		return 0, err
	}
	value, err := rdb.Get(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(value, 10, 64)
}

// TryLock 尝试获取互斥锁
func TryLock(ctx context.Context, key string, value interface{}, expiration time.Duration, retryTimes int) (bool, error) {
	rdb, err := client()
	if err != nil {
		return false, err
	}
	for i := 0; i <= retryTimes; i++ {
		success, err := rdb.SetNX(ctx, key, value, expiration).Result()
		if err != nil {
			return false, err
		}
		if success {
			return true, nil
		}
		time.Sleep(time.Millisecond * 200)
	}
	return false, nil
}

// UnLock 释放锁
func UnLock(ctx context.Context, key string, value interface{}) {
	rdb, err := client()
	if err != nil {
		return
	}
	rdb.Eval(ctx, "if redis.call('get', KEYS[1]) == ARGV[1] then return redis.call('del', KEYS[1]) else return 0 end", []string{key}, value)
}

// DeleteKey 删除一个键
func DeleteKey(ctx context.Context, key string) error {
	rdb, err := client()
	if err != nil {
		return err
	}
	return rdb.Del(ctx, key).Err()
}

// GetRdbClient 获取redis客户端
func GetRdbClient() *redis.Client {
	return Rdb
}
