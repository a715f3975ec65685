// Package executor выполняет один запланированный переход состояния
// товара: применяет изменения, подтверждает их контрольным чтением и
// только после этого сообщает об успехе. Какие записи и когда
// исполнять, решает runner.
package executor
