// Package blocks хранит леджер блокировок: блокировки целых дней и
// отдельных слотов. Строки слотов с booking_id принадлежат бронированиям;
// строки без booking_id - ручные блокировки оператора.
package blocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/velvetnails/VNS-BookingService/internal/domain"
	"github.com/velvetnails/VNS-BookingService/pkg/dbmetrics"
	"github.com/velvetnails/VNS-BookingService/pkg/psqlbuilder"
	"github.com/velvetnails/VNS-BookingService/pkg/types"
)

// uniqueViolation код ошибки PostgreSQL для нарушения уникального констрейнта
const uniqueViolation = "23505"

// DBExecutor минимальный интерфейс выполнения запросов
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий леджера блокировок
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetDayBlocks возвращает множество заблокированных дат в диапазоне
// [from, to]; ключ - дата в формате YYYY-MM-DD
func (r *Repository) GetDayBlocks(ctx context.Context, from, to time.Time) (map[string]bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("block_date").
		From("day_blocks").
		Where(squirrel.GtOrEq{"block_date": from}).
		Where(squirrel.LtOrEq{"block_date": to}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetDayBlocks - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetDayBlocks - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	blocked := make(map[string]bool)
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("%w: GetDayBlocks - scan row: %v", ErrScanRow, err)
		}
		blocked[d.Format(domain.DateFormat)] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetDayBlocks - rows error: %v", ErrScanRow, err)
	}

	return blocked, nil
}

// IsDayBlocked проверяет блокировку одной даты
func (r *Repository) IsDayBlocked(ctx context.Context, date time.Time) (bool, error) {
	blocked, err := r.GetDayBlocks(ctx, date, date)
	if err != nil {
		return false, err
	}
	return blocked[date.Format(domain.DateFormat)], nil
}

// InsertDayBlock блокирует дату целиком; повторная блокировка не ошибка
func (r *Repository) InsertDayBlock(ctx context.Context, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("day_blocks").
		Columns("block_date").
		Values(date).
		Suffix("ON CONFLICT (block_date) DO NOTHING").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: InsertDayBlock - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: InsertDayBlock - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteDayBlock снимает блокировку даты
func (r *Repository) DeleteDayBlock(ctx context.Context, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("day_blocks").
		Where(squirrel.Eq{"block_date": date}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteDayBlock - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteDayBlock - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteDayBlock - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrDayBlockNotFound
	}

	return nil
}

// GetSlotBlocks возвращает блокировки слотов в диапазоне дат,
// сгруппированные по дате (ключ - YYYY-MM-DD)
func (r *Repository) GetSlotBlocks(ctx context.Context, from, to time.Time) (map[string][]domain.SlotBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("block_date", "start_time", "booking_id", "created_at").
		From("blocked_slots").
		Where(squirrel.GtOrEq{"block_date": from}).
		Where(squirrel.LtOrEq{"block_date": to}).
		OrderBy("block_date ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetSlotBlocks - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetSlotBlocks - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	blocks := make(map[string][]domain.SlotBlock)
	for rows.Next() {
		var b domain.SlotBlock
		var createdAt sql.NullTime
		if err := rows.Scan(&b.Date, &b.Start, &b.BookingID, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: GetSlotBlocks - scan row: %v", ErrScanRow, err)
		}
		b.CreatedAt = createdAt.Time
		key := b.Date.Format(domain.DateFormat)
		blocks[key] = append(blocks[key], b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetSlotBlocks - rows error: %v", ErrScanRow, err)
	}

	return blocks, nil
}

// GetSlotBlocksForDate возвращает блокировки слотов одной даты
func (r *Repository) GetSlotBlocksForDate(ctx context.Context, date time.Time) ([]domain.SlotBlock, error) {
	all, err := r.GetSlotBlocks(ctx, date, date)
	if err != nil {
		return nil, err
	}
	return all[date.Format(domain.DateFormat)], nil
}

// InsertSlotBlocks вставляет блокировки слотов одним запросом
// bookingID nil означает ручную блокировку оператора
// Нарушение уникальности (date, start) означает, что слот уже занят -
// конкурирующая запись успела раньше; возвращается ErrSlotTaken
func (r *Repository) InsertSlotBlocks(ctx context.Context, date time.Time, starts []types.TimeString, bookingID *int64) error {
	if len(starts) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("blocked_slots").
		Columns("block_date", "start_time", "booking_id")
	for _, start := range starts {
		insertBuilder = insertBuilder.Values(date, start, bookingID)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: InsertSlotBlocks - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return ErrSlotTaken
		}
		return fmt.Errorf("%w: InsertSlotBlocks - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteSlotBlocksByBooking снимает блокировки, принадлежащие бронированию
// Удаляются ровно те строки, что были вставлены при создании или последнем
// переносе этого бронирования; соседние ручные блокировки не затрагиваются
func (r *Repository) DeleteSlotBlocksByBooking(ctx context.Context, bookingID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blocked_slots").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteSlotBlocksByBooking - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteSlotBlocksByBooking - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteManualSlotBlock снимает ручную блокировку слота
// Строки бронирований (booking_id не NULL) этим путем не удаляются
func (r *Repository) DeleteManualSlotBlock(ctx context.Context, date time.Time, start types.TimeString) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blocked_slots").
		Where(squirrel.Eq{"block_date": date}).
		Where(squirrel.Eq{"start_time": start}).
		Where(squirrel.Eq{"booking_id": nil}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteManualSlotBlock - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteManualSlotBlock - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteManualSlotBlock - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotBlockNotFound
	}

	return nil
}
