package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadEnv nạp biến môi trường từ tệp `.env`, không có tệp thì dùng
// biến môi trường hệ thống
func LoadEnv() error {
	if err := godotenv.Load(); err != nil {
		return err
	}
	return nil
}

func GetEnv(key string) string {
	return os.Getenv(key)
}

// GetEnvInt64 đọc biến môi trường dạng số, không hợp lệ thì trả về fallback
func GetEnvInt64(key string, fallback int64) int64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return v
}

// GetEnvFloat đọc biến môi trường dạng thập phân, không hợp lệ thì trả về fallback
func GetEnvFloat(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}
