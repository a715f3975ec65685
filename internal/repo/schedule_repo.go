package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shaiso/Vitrina/internal/domain"
)

// ScheduleRepo — репозиторий записей расписания.
type ScheduleRepo struct {
	pool *pgxpool.Pool
}

// NewScheduleRepo создаёт новый ScheduleRepo.
func NewScheduleRepo(pool *pgxpool.Pool) *ScheduleRepo {
	return &ScheduleRepo{pool: pool}
}

const entryColumns = `
	s.id, s.product_id, s.scheduled_at,
	COALESCE(k.meta_value, 'visibility'), s.completed, s.created_at
`

const kindJoin = `
	LEFT JOIN product_meta k
	       ON k.product_id = s.product_id AND k.meta_key = 'schedule_type'
`

// UpsertPending заменяет незавершённую запись товара новой: старая
// pending-запись удаляется, новая вставляется, вид перехода пишется
// аннотацией schedule_type. Всё в одной транзакции — частичный
// уникальный индекс на (product_id) WHERE NOT completed не даст
// гонке оставить две pending-записи.
func (r *ScheduleRepo) UpsertPending(ctx context.Context, productID int64, at time.Time, kind domain.TransitionKind) (*domain.ScheduleEntry, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM schedules WHERE product_id = $1 AND NOT completed`, productID,
	); err != nil {
		return nil, fmt.Errorf("delete pending: %w", err)
	}

	entry := domain.ScheduleEntry{
		ProductID:   productID,
		ScheduledAt: at,
		Kind:        kind,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO schedules (product_id, scheduled_at)
		VALUES ($1, $2)
		RETURNING id, created_at
	`, productID, at).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert schedule: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO product_meta (product_id, meta_key, meta_value)
		VALUES ($1, 'schedule_type', $2)
		ON CONFLICT (product_id, meta_key) DO UPDATE SET meta_value = EXCLUDED.meta_value
	`, productID, kind.String()); err != nil {
		return nil, fmt.Errorf("set schedule type: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return &entry, nil
}

// CancelPending удаляет незавершённую запись товара вместе с аннотацией
// вида перехода. Отсутствие записи — не ошибка.
func (r *ScheduleRepo) CancelPending(ctx context.Context, productID int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM schedules WHERE product_id = $1 AND NOT completed`, productID,
	); err != nil {
		return fmt.Errorf("delete pending: %w", err)
	}
	if _, err := tx.Exec(ctx,
		`DELETE FROM product_meta WHERE product_id = $1 AND meta_key = 'schedule_type'`, productID,
	); err != nil {
		return fmt.Errorf("delete schedule type: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// DeleteByID удаляет незавершённую запись по её идентификатору.
// Завершённые записи — история, их эта операция не трогает.
func (r *ScheduleRepo) DeleteByID(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var productID int64
	err = tx.QueryRow(ctx,
		`DELETE FROM schedules WHERE id = $1 AND NOT completed RETURNING product_id`, id,
	).Scan(&productID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM product_meta WHERE product_id = $1 AND meta_key = 'schedule_type'`, productID,
	); err != nil {
		return fmt.Errorf("delete schedule type: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// GetPending возвращает незавершённую запись товара.
func (r *ScheduleRepo) GetPending(ctx context.Context, productID int64) (*domain.ScheduleEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM schedules s` + kindJoin + `
		WHERE s.product_id = $1 AND NOT s.completed
	`
	return scanEntry(r.pool.QueryRow(ctx, query, productID))
}

// ListDue возвращает незавершённые записи с наступившим сроком,
// по возрастанию срока.
func (r *ScheduleRepo) ListDue(ctx context.Context, now time.Time) ([]domain.ScheduleEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM schedules s` + kindJoin + `
		WHERE NOT s.completed AND s.scheduled_at <= $1
		ORDER BY s.scheduled_at ASC, s.id ASC
	`
	rows, err := r.pool.Query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("list due schedules: %w", err)
	}
	defer rows.Close()

	var entries []domain.ScheduleEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

// CountDue возвращает число записей с наступившим сроком.
func (r *ScheduleRepo) CountDue(ctx context.Context, now time.Time) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM schedules WHERE NOT completed AND scheduled_at <= $1`, now,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count due schedules: %w", err)
	}
	return n, nil
}

// NextScheduledAt возвращает ближайший срок среди незавершённых
// записей; nil — когда ничего не запланировано.
func (r *ScheduleRepo) NextScheduledAt(ctx context.Context) (*time.Time, error) {
	var next *time.Time
	err := r.pool.QueryRow(ctx,
		`SELECT MIN(scheduled_at) FROM schedules WHERE NOT completed`,
	).Scan(&next)
	if err != nil {
		return nil, fmt.Errorf("next scheduled at: %w", err)
	}
	return next, nil
}

// MarkCompleted помечает запись выполненной. Идемпотентен: повторный
// вызов по той же записи и вызов по уже удалённой записи безвредны.
func (r *ScheduleRepo) MarkCompleted(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE schedules SET completed = TRUE WHERE id = $1`, id,
	)
	if err != nil {
		return fmt.Errorf("mark completed: %w", err)
	}
	return nil
}

// ListPending возвращает все незавершённые записи для админского
// списка, обогащённые состоянием товара.
func (r *ScheduleRepo) ListPending(ctx context.Context) ([]domain.PendingSchedule, error) {
	query := `
		SELECT ` + entryColumns + `,
		       p.name, p.status, COALESCE(tz.meta_value, '')
		FROM schedules s
		JOIN products p ON p.id = s.product_id` + kindJoin + `
		LEFT JOIN product_meta tz
		       ON tz.product_id = s.product_id AND tz.meta_key = 'timezone'
		WHERE NOT s.completed
		ORDER BY s.scheduled_at ASC, s.id ASC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list pending schedules: %w", err)
	}
	defer rows.Close()

	var pending []domain.PendingSchedule
	for rows.Next() {
		var p domain.PendingSchedule
		var kind string
		err := rows.Scan(
			&p.ID,
			&p.ProductID,
			&p.ScheduledAt,
			&kind,
			&p.Completed,
			&p.CreatedAt,
			&p.ProductName,
			&p.ProductStatus,
			&p.TimezoneOverride,
		)
		if err != nil {
			return nil, fmt.Errorf("scan pending schedule: %w", err)
		}
		p.Kind = domain.TransitionKind(kind)
		pending = append(pending, p)
	}
	return pending, rows.Err()
}

func scanEntry(row pgx.Row) (*domain.ScheduleEntry, error) {
	var e domain.ScheduleEntry
	var kind string
	err := row.Scan(
		&e.ID,
		&e.ProductID,
		&e.ScheduledAt,
		&kind,
		&e.Completed,
		&e.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan schedule: %w", err)
	}
	e.Kind = domain.TransitionKind(kind)
	return &e, nil
}
