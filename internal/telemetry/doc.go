// Package telemetry — логирование и метрики Syncline.
//
// Логи: log/slog, уровень и формат через LOG_LEVEL / LOG_FORMAT.
// Каждая строка лога пайплайна тегируется run_id и, где известен,
// customer_id — это единственный способ различить интерливинг
// конкурентных items и пересекающихся runs.
//
// Метрики: prometheus counters/histograms, отдаются через /metrics.
package telemetry
