package domain

import "fmt"

// TransitionKind — вид запланированного перехода состояния товара.
//
// Поддерживаются ровно два вида (закрытое множество):
//   - "visibility" — private → publish, плюс видимость каталога
//   - "status"     — draft → publish, видимость не трогаем
//
// Executor ветвится по этому типу явным switch — добавление нового
// вида перехода потребует расширить switch, а не сравнение строк.
type TransitionKind string

const (
	// KindPublishFromPrivate — смена видимости: товар со статусом
	// private становится publish, видимость каталога — visible,
	// флаг featured сбрасывается.
	KindPublishFromPrivate TransitionKind = "visibility"

	// KindPublishFromDraft — смена статуса: товар со статусом draft
	// становится publish. Видимость каталога остаётся как была.
	KindPublishFromDraft TransitionKind = "status"
)

// Valid возвращает true для известного вида перехода.
func (k TransitionKind) Valid() bool {
	switch k {
	case KindPublishFromPrivate, KindPublishFromDraft:
		return true
	default:
		return false
	}
}

// String возвращает строковое представление (значение для product_meta).
func (k TransitionKind) String() string {
	return string(k)
}

// EligibleFrom проверяет, допустим ли переход из текущего статуса товара.
// visibility планируется только для private, status — только для draft.
func (k TransitionKind) EligibleFrom(status ProductStatus) bool {
	switch k {
	case KindPublishFromPrivate:
		return status == StatusPrivate
	case KindPublishFromDraft:
		return status == StatusDraft
	default:
		return false
	}
}

// ParseTransitionKind парсит строку в TransitionKind.
func ParseTransitionKind(s string) (TransitionKind, error) {
	k := TransitionKind(s)
	if !k.Valid() {
		return "", fmt.Errorf("unknown transition kind %q", s)
	}
	return k, nil
}
