// Package logger はzapのロガーを環境ごとに組み立てる。
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New はdevelopmentならconsole/debug、それ以外はjson/info。
func New(env string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if env == "development" {
		cfg = zap.NewDevelopmentConfig()
		cfg.Encoding = "console"
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	return cfg.Build()
}
