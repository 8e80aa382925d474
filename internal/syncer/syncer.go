package syncer

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/shaiso/Syncline/internal/domain"
	"github.com/shaiso/Syncline/internal/telemetry"
)

// Default configuration values.
const (
	DefaultMaxRetries  = 3
	DefaultRetryDelay  = 2 * time.Second
	DefaultConcurrency = 1
)

// CustomerSource — источник pending-записей customers (внешний
// коллаборатор fetch-шага). Контракт: ListUnsynced возвращает
// упорядоченную последовательность строк или пустую; частичных /
// неконсистентных строк не бывает — сбой запроса приходит как ошибка.
type CustomerSource interface {
	ListUnsynced(ctx context.Context) ([]domain.CustomerRow, error)
	MarkSynced(ctx context.Context, id int64) error
}

// Sender — доставка payload одного customer в CRM.
type Sender interface {
	SyncCustomer(ctx context.Context, payload *domain.CrmPayload) error
}

// Syncer — оркестратор sync run'ов.
//
// На каждый вызов RunOnce: открывает run, забирает batch unsynced
// customers, раскладывает его на независимые item-пайплайны
// (map -> send with retry -> log outcome) и закрывает run.
//
// Гарантия изоляции: ошибка одного item никогда не мешает обработке
// остальных и не прерывает run. RunOnce не возвращает и не пробрасывает
// ошибок — следующий тик scheduler'а ни от чего не зависит.
type Syncer struct {
	source CustomerSource
	crm    Sender

	concurrency int
	maxRetries  int
	retryDelay  time.Duration

	logger *slog.Logger
}

// Config — конфигурация Syncer.
type Config struct {
	Source CustomerSource
	CRM    Sender

	// Concurrency — размер пула конкурентных items (default: 1,
	// т.е. последовательная обработка batch'а).
	Concurrency int

	// MaxRetries — число повторов доставки после первой попытки
	// (default: 3).
	MaxRetries int

	// RetryDelay — фиксированная задержка между попытками (default: 2s).
	RetryDelay time.Duration

	Logger *slog.Logger
}

// New создаёт новый Syncer.
func New(cfg Config) *Syncer {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}

	retryDelay := cfg.RetryDelay
	if retryDelay <= 0 {
		retryDelay = DefaultRetryDelay
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Syncer{
		source:      cfg.Source,
		crm:         cfg.CRM,
		concurrency: concurrency,
		maxRetries:  maxRetries,
		retryDelay:  retryDelay,
		logger:      logger,
	}
}

// RunOnce выполняет один sync run.
//
// Вызывается scheduler'ом на каждый тик. Никогда не паникует и не
// возвращает ошибку: сбой fetch-шага прерывает только текущий run
// (unsynced-строки останутся и уйдут следующим run'ом), сбои items
// гасятся на уровне item-пайплайна. Лог завершения run эмитится
// всегда, сколько бы items ни упало.
func (s *Syncer) RunOnce(ctx context.Context) {
	run := domain.NewSyncRun()
	logger := telemetry.WithRunID(s.logger, run.ID.String())

	telemetry.RunsTotal.Inc()
	logger.Info("starting customer sync")

	defer func() {
		logger.Info("finished customer sync", "duration", run.Duration())
		telemetry.RunDuration.Observe(run.Duration().Seconds())
	}()
	// Catch-all уровня run: страховка на случай паники вне item-пайплайнов
	// (у items есть собственная, независимая страховка).
	defer func() {
		if r := recover(); r != nil {
			logger.Error("unhandled panic during customer sync", "panic", r)
		}
	}()

	rows, err := s.source.ListUnsynced(ctx)
	if err != nil {
		telemetry.FetchFailures.Inc()
		logger.Error("failed to load unsynced customers", "error", err)
		return
	}

	if len(rows) == 0 {
		logger.Info("no customers to sync")
		return
	}

	logger.Info("loaded customers to sync", "count", len(rows))

	// Fan-out: ограниченный пул независимых item-пайплайнов.
	// Порядок batch'а семантики не несёт — items не связаны между собой.
	sem := make(chan struct{}, s.concurrency)
	var wg sync.WaitGroup
	for i := range rows {
		row := rows[i]

		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			s.syncCustomer(ctx, logger, domain.ItemContext{RunID: run.ID}, row)
		}()
	}
	wg.Wait()
}

// syncCustomer — item-пайплайн одного customer:
// извлечение id -> map -> send with retry -> лог исхода -> mark synced.
//
// Всегда возвращает терминальный статус, ошибки наружу не выходят.
func (s *Syncer) syncCustomer(ctx context.Context, runLogger *slog.Logger, item domain.ItemContext, row domain.CustomerRow) (status domain.ItemStatus) {
	logger := itemLogger(runLogger, item)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("unhandled panic while syncing customer", "panic", r)
			telemetry.CustomersFailed.WithLabelValues(string(FailureUnclassified)).Inc()
			status = domain.ItemStatusFailedHandled
		}
	}()

	// id попадает в item context до построения payload: лог об ошибке
	// маппинга остальных полей всё равно атрибутируется customer'у.
	if id, err := CustomerID(row); err == nil {
		item = item.WithCustomerID(id)
		logger = itemLogger(runLogger, item)
	}

	logger.Debug("preparing crm request")

	payload, err := MapRow(row)
	if err != nil {
		s.failItem(logger, 0, err)
		return domain.ItemStatusFailedHandled
	}

	attempts, err := s.deliver(ctx, logger, payload)
	if err != nil {
		s.failItem(logger, attempts, err)
		return domain.ItemStatusFailedHandled
	}

	logger.Info("customer synced")
	telemetry.CustomersSynced.Inc()

	if err := s.source.MarkSynced(ctx, payload.ID); err != nil {
		// Best-effort: строка останется unsynced и уйдёт повторно
		// следующим run'ом, CRM идемпотентен по id.
		logger.Warn("failed to mark customer as synced", "error", err)
	}

	return domain.ItemStatusDelivered
}

// failItem логирует терминальный отказ item'а.
// attempts > 0 — отказ доставки после attempts попыток;
// attempts == 0 — item не дошёл до отправки (ошибка маппинга).
func (s *Syncer) failItem(logger *slog.Logger, attempts int, err error) {
	reason := ReasonOf(err)
	if attempts > 0 {
		logger.Error("crm sync failed",
			"attempts", attempts,
			"reason", reason,
			"error", err,
		)
	} else {
		logger.Error("customer sync failed",
			"reason", reason,
			"error", err,
		)
	}
	telemetry.CustomersFailed.WithLabelValues(string(reason)).Inc()
}

// itemLogger строит логгер item'а из его контекста.
func itemLogger(runLogger *slog.Logger, item domain.ItemContext) *slog.Logger {
	if item.CustomerID != nil {
		return telemetry.WithCustomerID(runLogger, *item.CustomerID)
	}
	return runLogger
}
