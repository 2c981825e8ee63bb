package notifier

import (
	"context"
	"errors"

	"talent-desk/internal/model"
)

type clientNotifier interface {
	NotifyClient(ctx context.Context, client model.ClientIntake) error
}

// Fanout 依次调用所有通知器，汇总全部错误。
type Fanout []clientNotifier

// NotifyClient 对每个通知器都会调用，不因单个失败而中断。
func (f Fanout) NotifyClient(ctx context.Context, client model.ClientIntake) error {
	var errs []error
	for _, n := range f {
		if n == nil {
			continue
		}
		if err := n.NotifyClient(ctx, client); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
