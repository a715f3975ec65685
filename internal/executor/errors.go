package executor

import "errors"

// Ошибки выполнения перехода. Любая из них оставляет запись расписания
// незавершённой — следующий прогон попробует снова.
var (
	// ErrProductNotFound — товар записи расписания не существует.
	ErrProductNotFound = errors.New("product not found")

	// ErrVerificationFailed — контрольное чтение после записи не
	// подтвердило целевое состояние товара.
	ErrVerificationFailed = errors.New("verification failed")
)

// TransitionError — ошибка перехода товара, который успел загрузиться.
// Несёт имя товара, чтобы отчёт прогона мог назвать неудавшиеся
// переходы; сама причина остаётся во вложенной ошибке и в отчёт
// не публикуется.
type TransitionError struct {
	Name string
	Err  error
}

func (e *TransitionError) Error() string { return e.Err.Error() }

func (e *TransitionError) Unwrap() error { return e.Err }
