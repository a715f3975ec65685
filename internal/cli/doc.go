// Package cli реализует инструмент командной строки Vitrina.
//
// # Обзор
//
// CLI — клиентская утилита для взаимодействия с Vitrina API.
// Работает через HTTP, не импортирует внутренние пакеты системы.
// CLI используется для управления товарами, расписаниями публикации
// и планировщиком.
//
// # Ключевые компоненты
//
// ## Client
//
// HTTP-клиент для Vitrina API. Инкапсулирует все HTTP-запросы,
// парсинг ответов (DataResponse, ListResponse, ErrorResponse)
// и обработку ошибок.
//
//	client := cli.NewClient("http://localhost:8080")
//	schedules, err := client.ListSchedules()
//
// ## Output
//
// Форматирование вывода. Поддерживает два режима:
//   - Таблицы (text/tabwriter) — по умолчанию
//   - JSON (json.MarshalIndent) — с флагом --json
//
// Данные выводятся в stdout, сообщения (Success/Error) — в stderr.
// Это позволяет использовать pipe: vitrina schedule list --json | jq .
//
// ## Commands
//
// Cobra-команды организованы по ресурсам:
//   - product:  list, create, show
//   - schedule: list, set, cancel, delete
//   - run:      now, status, report
//   - timezone: list
//   - settings: show, set
//
// Каждая группа создаётся через фабричную функцию (NewScheduleCmd
// и т.д.), принимающую clientFn и outputFn — замыкания для ленивого
// создания Client и Output после парсинга PersistentFlags.
package cli
