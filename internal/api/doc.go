// Package api содержит HTTP API сервер.
//
// Структура:
//   - handler.go           — Handler с DI (репозитории, publisher, logger)
//   - routes.go            — регистрация маршрутов
//   - middleware.go        — middleware (logging, recovery)
//   - response.go          — унифицированные JSON-ответы и обработка ошибок
//   - dto.go               — Data Transfer Objects (request/response)
//   - product_handler.go   — обработчики для /products
//   - schedule_handler.go  — обработчики расписаний
//   - scheduler_handler.go — запуск и статус планировщика
//   - settings_handler.go  — настройки процесса
//   - report_handler.go    — отчёты прогонов
//   - timezone_handler.go  — каталог таймзон
//
// API предоставляет REST endpoints для управления товарами,
// расписаниями публикации и планировщиком.
package api
