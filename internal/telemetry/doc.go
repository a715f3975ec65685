// Package telemetry обеспечивает наблюдаемость системы.
//
// Включает:
//   - logging.go — structured logging через slog
//
// Все сервисы используют единый формат логирования; Prometheus-счётчики
// объявляются в main каждого бинарника и экспортируются на /metrics.
package telemetry
