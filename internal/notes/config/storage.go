package config

import (
	"errors"
	"fmt"
	"time"

	"notekeeper/pkg/db/redis"
)

// StorageDriver - тип хранилища заметок.
type StorageDriver string

// Поддерживаемые хранилища.
const (
	DriverMemory   StorageDriver = "memory"
	DriverRedis    StorageDriver = "redis"
	DriverPostgres StorageDriver = "postgres"
)

// ErrUnknownDriver возвращается при неизвестном NOTES_STORAGE_DRIVER.
var ErrUnknownDriver = errors.New("unknown storage driver")

// StorageConfig выбирает хранилище и ключ коллекции.
type StorageConfig struct {
	Driver StorageDriver `yaml:"driver" env:"NOTES_STORAGE_DRIVER" env-default:"memory"`
	Key    string        `yaml:"key" env:"NOTES_STORAGE_KEY" env-default:"notes"`
}

// Validate проверяет драйвер.
func (s *StorageConfig) Validate() error {
	switch s.Driver {
	case DriverMemory, DriverRedis, DriverPostgres:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, s.Driver)
	}
}

// RedisConfig содержит настройки подключения к Redis.
type RedisConfig struct {
	Addr      string `yaml:"addr" env:"NOTES_REDIS_ADDR" env-default:"localhost:6379"`
	Password  string `yaml:"password" env:"NOTES_REDIS_PASSWORD"`
	DB        int    `yaml:"db" env:"NOTES_REDIS_DB" env-default:"0"`
	PoolSize  int    `yaml:"pool_size" env:"NOTES_REDIS_POOL_SIZE" env-default:"10"`
	Timeout   int    `yaml:"timeout" env:"NOTES_REDIS_TIMEOUT" env-default:"3"`
	KeyPrefix string `yaml:"key_prefix" env:"NOTES_REDIS_KEY_PREFIX" env-default:"notekeeper:"`
}

// ClientConfig переводит настройки в параметры клиента.
func (r *RedisConfig) ClientConfig() redis.Config {
	return redis.Config{
		Addr:     r.Addr,
		Password: r.Password,
		DB:       r.DB,
		PoolSize: r.PoolSize,
		Timeout:  time.Duration(r.Timeout) * time.Second,
	}
}

// DirectoryConfig указывает файл со списком блокнотов.
type DirectoryConfig struct {
	File string `yaml:"file" env:"NOTES_NOTEBOOKS_FILE" env-default:"data/notebooks.json"`
}
