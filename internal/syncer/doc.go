// Package syncer — ядро пайплайна синхронизации customers в CRM.
//
// # Обзор
//
// Syncer выполняет один sync run на каждый тик scheduler'а:
//
//  1. Открывает run (свежий run_id), логирует старт
//  2. Забирает batch unsynced customers из источника
//  3. Пустой batch — логирует "no customers to sync" и завершает run
//  4. Иначе раскладывает batch на независимые item-пайплайны
//  5. Всегда логирует завершение run, сколько бы items ни упало
//
// # Item-пайплайн
//
// Каждый customer проходит шаги map -> send with retry -> log outcome.
// Единица изоляции — item: ошибка одного customer (маппинг или доставка)
// никогда не блокирует остальных и не прерывает run. Item завершается
// в одном из двух терминальных статусов: DELIVERED или FAILED_HANDLED.
//
// # Retry policy
//
// Транспортные ошибки и не-2xx ответы CRM ретраятся до 3 раз с
// фиксированной задержкой 2s (итого до 4 попыток). Ошибки валидации
// записи и неклассифицированные ошибки не ретраятся — повтор не поможет.
// Retry выполняется in-process, задержка прерывается отменой context.
//
// # Конкурентность
//
// Fan-out batch'а — ограниченный пул (Concurrency, default 1).
// Items не разделяют мутируемого состояния; контекст item'а
// (run_id, customer_id) — явный иммутабельный value, а не общий
// мутируемый носитель.
package syncer
