package notifier

import (
	"context"

	"talent-desk/internal/model"

	"go.uber.org/zap"
)

// LogNotifier 仅记录新录入的客户，适合开发阶段使用。
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier 创建日志通知器，未提供 logger 时不输出。
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger.Named("notify")}
}

// NotifyClient 记录一条新客户信息。
func (n LogNotifier) NotifyClient(ctx context.Context, client model.ClientIntake) error {
	n.logger.Info("new client intake",
		zap.String("id", client.ID),
		zap.String("company", client.CompanyName),
		zap.String("contact", client.ContactEmail))
	return nil
}
