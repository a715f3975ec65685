package domain

import "time"

// ProductStatus — статус публикации товара в хост-хранилище.
//
// Жизненный цикл, который нас интересует:
//
//	draft   → publish (переход "status")
//	private → publish (переход "visibility")
type ProductStatus string

const (
	// StatusDraft — черновик, товар не опубликован.
	StatusDraft ProductStatus = "draft"

	// StatusPrivate — товар опубликован, но виден только владельцу.
	StatusPrivate ProductStatus = "private"

	// StatusPublish — товар опубликован публично.
	StatusPublish ProductStatus = "publish"
)

// Valid возвращает true для известного статуса.
func (s ProductStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPrivate, StatusPublish:
		return true
	default:
		return false
	}
}

// CatalogVisibility — видимость товара в каталоге и поиске.
type CatalogVisibility string

const (
	// VisibilityVisible — виден и в каталоге, и в поиске.
	VisibilityVisible CatalogVisibility = "visible"

	// VisibilityCatalog — виден только в каталоге.
	VisibilityCatalog CatalogVisibility = "catalog"

	// VisibilitySearch — виден только в поиске.
	VisibilitySearch CatalogVisibility = "search"

	// VisibilityHidden — скрыт отовсюду.
	VisibilityHidden CatalogVisibility = "hidden"
)

// Valid возвращает true для известной видимости.
func (v CatalogVisibility) Valid() bool {
	switch v {
	case VisibilityVisible, VisibilityCatalog, VisibilitySearch, VisibilityHidden:
		return true
	default:
		return false
	}
}

// Product — товар из внешнего хранилища сущностей.
//
// Ядро планировщика не владеет товарами: оно читает и мутирует их
// через интерфейс ProductStore (см. пакет executor). Эта структура —
// минимальный срез полей, нужных для применения и проверки перехода.
type Product struct {
	// ID — идентификатор товара в хост-хранилище.
	ID int64 `json:"id"`

	// Name — отображаемое имя (для отчётов и админки).
	Name string `json:"name"`

	// Status — текущий статус публикации.
	Status ProductStatus `json:"status"`

	// CatalogVisibility — текущая видимость в каталоге.
	CatalogVisibility CatalogVisibility `json:"catalog_visibility"`

	// Featured — флаг "рекомендуемый товар".
	// Переход visibility сбрасывает его в false.
	Featured bool `json:"featured"`

	// CreatedAt — время создания записи.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt — время последнего изменения.
	UpdatedAt time.Time `json:"updated_at"`
}
