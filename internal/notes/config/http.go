package config

import (
	"net"
	"strconv"
	"time"
)

// HTTPConfig содержит настройки HTTP-сервера.
type HTTPConfig struct {
	Host         string `yaml:"host" env:"NOTES_HTTP_HOST" env-default:"0.0.0.0"`
	Port         int    `yaml:"port" env:"NOTES_HTTP_PORT" env-default:"3000"`
	ReadTimeout  int    `yaml:"read_timeout" env:"NOTES_HTTP_READ_TIMEOUT" env-default:"10"`
	WriteTimeout int    `yaml:"write_timeout" env:"NOTES_HTTP_WRITE_TIMEOUT" env-default:"10"`
	BodyLimit    int    `yaml:"body_limit" env:"NOTES_HTTP_BODY_LIMIT" env-default:"1048576"`
}

// Address возвращает адрес для прослушивания.
func (h *HTTPConfig) Address() string {
	return net.JoinHostPort(h.Host, strconv.Itoa(h.Port))
}

// GetReadTimeout возвращает таймаут чтения.
func (h *HTTPConfig) GetReadTimeout() time.Duration {
	return time.Duration(h.ReadTimeout) * time.Second
}

// GetWriteTimeout возвращает таймаут записи.
func (h *HTTPConfig) GetWriteTimeout() time.Duration {
	return time.Duration(h.WriteTimeout) * time.Second
}
