// Package mq предоставляет инфраструктуру для работы с RabbitMQ.
//
// Структура:
//   - connection.go — управление соединением с RabbitMQ (reconnect, graceful shutdown)
//   - topology.go   — объявление exchanges, queues, bindings
//   - publisher.go  — публикация сообщений в очереди
//   - consumer.go   — потребление сообщений из очередей
//
// Типы сообщений:
//   - run.trigger — команда немедленного прогона
//   - run.report  — отчёт завершённого прогона
//
// Exchanges:
//   - vitrina.scheduler — команды планировщику
//   - vitrina.reports   — отчёты прогонов
package mq
