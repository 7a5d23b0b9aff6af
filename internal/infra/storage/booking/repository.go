package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/velvetnails/VNS-BookingService/internal/domain"
	"github.com/velvetnails/VNS-BookingService/pkg/dbmetrics"
	"github.com/velvetnails/VNS-BookingService/pkg/psqlbuilder"
	"github.com/velvetnails/VNS-BookingService/pkg/types"
)

var bookingColumns = []string{
	"id",
	"customer_name",
	"customer_phone",
	"service_id",
	"service_name",
	"booking_date",
	"start_time",
	"duration_minutes",
	"total_price",
	"addons",
	"status",
	"nail_art_notes",
	"admin_notes",
	"image_refs",
	"reminder_sent",
	"previous_date",
	"previous_start",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"customer_name",
			"customer_phone",
			"service_id",
			"service_name",
			"booking_date",
			"start_time",
			"duration_minutes",
			"total_price",
			"addons",
			"status",
			"nail_art_notes",
			"image_refs",
		).
		Values(
			b.CustomerName,
			b.CustomerPhone,
			b.ServiceID,
			b.ServiceName,
			b.Date,
			b.StartTime,
			b.DurationMinutes,
			b.TotalPrice,
			pq.Array(b.Addons),
			b.Status,
			b.NailArtNotes,
			pq.Array(b.ImageRefs),
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	// Внутри транзакции блокируем строку: lifecycle-операции читают
	// бронирование перед изменением статуса
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return b, nil
}

// GetByDate получает бронирования на дату, отсортированные по времени начала
// activeOnly ограничивает выборку статусами pending/confirmed
// Внутри транзакции добавляет FOR UPDATE - проверка пересечений и вставка
// слотов должны видеть согласованное состояние
func (r *Repository) GetByDate(ctx context.Context, date time.Time, activeOnly bool) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"booking_date": date}).
		OrderBy("start_time ASC")

	if activeOnly {
		statuses := make([]string, len(domain.ActiveStatuses))
		for i, s := range domain.ActiveStatuses {
			statuses[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statuses})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// Confirm подтверждает бронирование и фиксирует финальную цену
// Оператор может скорректировать цену при подтверждении: цена в заявке -
// предварительная оценка, подтвержденная цена - финальная
func (r *Repository) Confirm(ctx context.Context, id int64, finalPrice float64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusConfirmed).
		Set("total_price", finalPrice).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Confirm - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "Confirm", query, args)
}

// UpdateSchedule переносит бронирование на новое место в календаре
// Сбрасывает статус в pending (перенос требует повторного подтверждения),
// сбрасывает флаг напоминания и записывает прежние дату и время для аудита
func (r *Repository) UpdateSchedule(
	ctx context.Context,
	id int64,
	newDate time.Time,
	newStart types.TimeString,
	newDurationMinutes int,
	prevDate time.Time,
	prevStart types.TimeString,
) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("booking_date", newDate).
		Set("start_time", newStart).
		Set("duration_minutes", newDurationMinutes).
		Set("status", domain.StatusPending).
		Set("reminder_sent", false).
		Set("previous_date", prevDate).
		Set("previous_start", prevStart).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "UpdateSchedule", query, args)
}

// Delete удаляет бронирование
// Вызывается только при отмене и отклонении; история не сохраняется
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "Delete", query, args)
}

// GetDueReminders получает бронирования на дату, которым еще не отправлено
// SMS-напоминание
func (r *Repository) GetDueReminders(ctx context.Context, date time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	statuses := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		statuses[i] = string(s)
	}

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"booking_date": date}).
		Where(squirrel.Eq{"reminder_sent": false}).
		Where(squirrel.Eq{"status": statuses}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetDueReminders - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetDueReminders - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// MarkReminderSent помечает бронирование как получившее напоминание
func (r *Repository) MarkReminderSent(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("reminder_sent", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkReminderSent - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "MarkReminderSent", query, args)
}

// execExpectingRow выполняет запрос и требует ровно одной затронутой строки
func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку в бронирование
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var createdAt, updatedAt sql.NullTime
	var prevDate sql.NullTime
	var prevStart sql.NullString

	err := row.Scan(
		&b.ID,
		&b.CustomerName,
		&b.CustomerPhone,
		&b.ServiceID,
		&b.ServiceName,
		&b.Date,
		&b.StartTime,
		&b.DurationMinutes,
		&b.TotalPrice,
		pq.Array(&b.Addons),
		&b.Status,
		&b.NailArtNotes,
		&b.AdminNotes,
		pq.Array(&b.ImageRefs),
		&b.ReminderSent,
		&prevDate,
		&prevStart,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if prevDate.Valid {
		b.PreviousDate = &prevDate.Time
	}
	if prevStart.Valid {
		ts, err := types.NewTimeStringFromString(trimSeconds(prevStart.String))
		if err == nil {
			b.PreviousStart = &ts
		}
	}
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// trimSeconds обрезает секунды у значения TIME из PostgreSQL ("HH:MM:SS")
func trimSeconds(s string) string {
	if len(s) > 5 {
		return s[:5]
	}
	return s
}
