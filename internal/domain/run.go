package domain

import (
	"time"

	"github.com/google/uuid"
)

// SyncRun — один цикл синхронизации, запущенный тиком scheduler'а.
//
// Run существует только для корреляции логов и метрик: он не
// персистится и не несёт бизнес-состояния. Несколько runs могут
// пересекаться во времени (долгий batch + следующий тик) — это
// безопасно, т.к. run и его items не разделяют мутируемое состояние.
type SyncRun struct {
	// ID — уникальный идентификатор run (тег run_id в логах).
	ID uuid.UUID

	// StartedAt — время старта run.
	StartedAt time.Time
}

// NewSyncRun создаёт новый run со свежим идентификатором.
func NewSyncRun() SyncRun {
	return SyncRun{
		ID:        uuid.New(),
		StartedAt: time.Now(),
	}
}

// Duration возвращает время, прошедшее со старта run.
func (r SyncRun) Duration() time.Duration {
	return time.Since(r.StartedAt)
}

// ItemContext — контекст обработки одного customer внутри run.
//
// Иммутабельный per-item value, передаваемый явно через шаги
// пайплайна (mapping -> send -> log). CustomerID заполняется как
// можно раньше — ещё до построения payload — чтобы логи об ошибках
// кривых записей всё равно несли идентификатор, когда он известен.
//
// Items одного run независимы и не ссылаются друг на друга.
type ItemContext struct {
	RunID      uuid.UUID
	CustomerID *int64
}

// WithCustomerID возвращает копию контекста с заполненным CustomerID.
func (c ItemContext) WithCustomerID(id int64) ItemContext {
	return ItemContext{RunID: c.RunID, CustomerID: &id}
}

// ItemStatus — терминальный статус обработки одного item.
//
// Жизненный цикл:
//
//	attempting(n) → DELIVERED
//	             ↘ FAILED_HANDLED (после исчерпания retry или fail-fast)
//
// Оба статуса "handled": из item-пайплайна наружу ошибка не выходит.
type ItemStatus string

const (
	// ItemStatusDelivered — payload принят CRM (2xx).
	ItemStatusDelivered ItemStatus = "DELIVERED"

	// ItemStatusFailedHandled — item не доставлен, ошибка залогирована,
	// дальнейших действий от оркестратора не требуется.
	ItemStatusFailedHandled ItemStatus = "FAILED_HANDLED"
)
