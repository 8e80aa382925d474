package syncer

import (
	"errors"
	"fmt"

	"github.com/shaiso/Syncline/internal/crm"
)

// InvalidRecordError — запись customer не прошла валидацию при
// маппинге (id отсутствует, не число и не парсится как число).
//
// Не ретраябельна: повторная попытка над той же строкой даст тот же
// результат, item сразу переходит в FAILED_HANDLED.
type InvalidRecordError struct {
	// Column — имя колонки с негодным значением.
	Column string

	// Value — сырое значение из строки (для диагностики в логе).
	Value any
}

func (e *InvalidRecordError) Error() string {
	return fmt.Sprintf("invalid customer record: column %q has unusable value %v (%T)", e.Column, e.Value, e.Value)
}

// FailureReason — закрытая таксономия причин отказа item'а.
//
// Замена runtime-матчинга по классам исключений: решение retry/no-retry
// принимается по перечислимым вариантам, а не по catch-all иерархии.
type FailureReason string

const (
	// FailureInvalidRecord — запись не смаппилась; retry бессмыслен.
	FailureInvalidRecord FailureReason = "invalid_record"

	// FailureTransport — транспортная ошибка до CRM; ретраябельна.
	FailureTransport FailureReason = "transport_error"

	// FailureRemoteRejected — CRM ответил не-2xx; ретраябельна
	// наравне с транспортными ошибками (включая 4xx — см. DESIGN.md).
	FailureRemoteRejected FailureReason = "remote_rejected"

	// FailureUnclassified — любая другая ошибка; catch-all на случай
	// нового вида ошибок, не попавшего в классификацию. Не ретраябельна,
	// всегда логируется, никогда не фатальна для run.
	FailureUnclassified FailureReason = "unclassified"
)

// ReasonOf классифицирует ошибку item-пайплайна.
func ReasonOf(err error) FailureReason {
	var invalid *InvalidRecordError
	if errors.As(err, &invalid) {
		return FailureInvalidRecord
	}
	var rejected *crm.RemoteRejectedError
	if errors.As(err, &rejected) {
		return FailureRemoteRejected
	}
	var transport *crm.TransportError
	if errors.As(err, &transport) {
		return FailureTransport
	}
	return FailureUnclassified
}

// IsRetryable сообщает, имеет ли смысл повторять доставку после ошибки.
func IsRetryable(err error) bool {
	switch ReasonOf(err) {
	case FailureTransport, FailureRemoteRejected:
		return true
	default:
		return false
	}
}
