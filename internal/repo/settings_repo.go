package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Ключи настроек процесса.
const (
	// SettingDefaultTimezone — таймзона по умолчанию для товаров
	// без собственного override.
	SettingDefaultTimezone = "default_timezone"

	// SettingDeleteDataOnUninstall — разрешение сносить схему с
	// данными при деинсталляции ("yes"/"no").
	SettingDeleteDataOnUninstall = "delete_data_on_uninstall"
)

// SettingsRepo — репозиторий настроек (таблица key/value).
type SettingsRepo struct {
	pool *pgxpool.Pool
}

// NewSettingsRepo создаёт новый SettingsRepo.
func NewSettingsRepo(pool *pgxpool.Pool) *SettingsRepo {
	return &SettingsRepo{pool: pool}
}

// Get возвращает значение настройки.
func (r *SettingsRepo) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.pool.QueryRow(ctx,
		`SELECT value FROM settings WHERE key = $1`, key,
	).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get setting: %w", err)
	}
	return value, nil
}

// Set записывает настройку (upsert).
func (r *SettingsRepo) Set(ctx context.Context, key, value string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO settings (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("set setting: %w", err)
	}
	return nil
}

// All возвращает все настройки.
func (r *SettingsRepo) All(ctx context.Context) (map[string]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		settings[key] = value
	}
	return settings, rows.Err()
}

// DefaultTimezone возвращает таймзону процесса по умолчанию;
// пустая строка — настройка не задана.
func (r *SettingsRepo) DefaultTimezone(ctx context.Context) (string, error) {
	zone, err := r.Get(ctx, SettingDefaultTimezone)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	return zone, err
}

// DeleteDataOnUninstall сообщает, разрешено ли сносить данные при
// деинсталляции. Незаданная настройка — запрет.
func (r *SettingsRepo) DeleteDataOnUninstall(ctx context.Context) (bool, error) {
	value, err := r.Get(ctx, SettingDeleteDataOnUninstall)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return value == "yes", nil
}
