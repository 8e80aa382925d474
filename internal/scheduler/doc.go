// Package scheduler — периодический триггер sync run'ов.
//
// Внешний коллаборатор ядра: единственная обязанность — вызывать
// Runner.RunOnce по расписанию (фиксированный период или cron).
// Scheduler ничего не знает об исходе run'а и не зависит от него:
// RunOnce не возвращает ошибок по контракту.
package scheduler
