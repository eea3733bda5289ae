package notify

import (
	"redemption_report/internal/pkg/config"
	"redemption_report/pkg/logger"

	"go.uber.org/zap"
)

// Notifier 管理端通知通道
type Notifier interface {
	Success(title, message string) error
}

// LogNotifier 本地/开发环境的通知实现，只写日志
type LogNotifier struct{}

func (n *LogNotifier) Success(title, message string) error {
	if logger.Log != nil {
		logger.Log.Info("notification",
			zap.String("severity", "success"),
			zap.String("title", title),
			zap.String("message", message),
		)
	}
	return nil
}

// GlobalNotifier 实例
var GlobalNotifier Notifier

// InitNotifier 初始化通知通道
// 配置了推送账号时使用阿里云推送，否则退回日志通知，不阻塞启动
func InitNotifier() {
	cfg := config.GlobalConfig.Push
	if cfg.AccessKeyID != "" && cfg.AppKey != 0 {
		if n, err := NewAliyunPushNotifier(); err == nil {
			GlobalNotifier = n
			return
		}
	}
	GlobalNotifier = &LogNotifier{}
}
