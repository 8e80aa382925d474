package syncer

import (
	"context"
	"log/slog"
	"time"

	"github.com/shaiso/Syncline/internal/domain"
	"github.com/shaiso/Syncline/internal/telemetry"
)

// deliver отправляет payload в CRM с ограниченным количеством повторов.
//
// Policy: ретраябельные ошибки (transport, remote_rejected) повторяются
// до maxRetries раз с фиксированной задержкой retryDelay между попытками;
// остальные ошибки возвращаются после первой попытки (fail-fast).
//
// Возвращает число сделанных попыток — лог об исчерпании retry должен
// нести attempt count.
func (s *Syncer) deliver(ctx context.Context, logger *slog.Logger, payload *domain.CrmPayload) (int, error) {
	attempts := 0
	for {
		attempts++

		err := s.crm.SyncCustomer(ctx, payload)
		if err == nil {
			return attempts, nil
		}

		if !IsRetryable(err) {
			return attempts, err
		}
		if attempts-1 >= s.maxRetries {
			// Исчерпали окно: 1 попытка + maxRetries повторов.
			return attempts, err
		}

		logger.Warn("crm request failed, will retry",
			"attempt", attempts,
			"delay", s.retryDelay,
			"error", err,
		)
		telemetry.CrmRetries.Inc()

		// Ждём с учётом context: shutdown не должен зависать в задержке.
		select {
		case <-time.After(s.retryDelay):
		case <-ctx.Done():
			return attempts, ctx.Err()
		}
	}
}
