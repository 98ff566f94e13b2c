package booking

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/chapternet/CN-PodcastService/internal/domain"
	"github.com/chapternet/CN-PodcastService/pkg/dbmetrics"
	"github.com/chapternet/CN-PodcastService/pkg/psqlbuilder"
)

// Бронирования всегда читаются вместе со снимком слота, поэтому
// каждая выборка идёт через JOIN со slots.
const bookingColumns = "b.id, b.slot_id, b.podcast_id, b.user_id, b.status, " +
	"b.member_name, b.member_email, b.member_mobile, b.member_chapter, b.admin_notes, " +
	"b.created_at, b.updated_at, " +
	"s.date, s.start_time, s.end_time, s.capacity, s.booked_count, s.status"

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование с денормализованными данными участника.
// Вызывается внутри транзакции usecase вместе с инкрементом счетчика слота,
// чтобы исключить гонку при заполнении последнего места.
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"slot_id",
			"podcast_id",
			"user_id",
			"status",
			"member_name",
			"member_email",
			"member_mobile",
			"member_chapter",
			"admin_notes",
		).
		Values(
			b.SlotID,
			b.PodcastID,
			b.UserID,
			b.Status,
			b.MemberName,
			b.MemberEmail,
			b.MemberMobile,
			b.MemberChapter,
			b.AdminNotes,
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

// GetByID получает бронирование по ID вместе со снимком слота
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns).
		From("bookings b").
		Join("slots s ON s.id = b.slot_id").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := r.scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return b, nil
}

// ListByPodcast получает страницу бронирований подкаста и общее количество.
// Search ищет по имени и email участника без учета регистра.
func (r *Repository) ListByPodcast(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns).
		From("bookings b").
		Join("slots s ON s.id = b.slot_id")
	countBuilder := psqlbuilder.Select("COUNT(*)").
		From("bookings b").
		Join("slots s ON s.id = b.slot_id")

	applyFilter := func(builder squirrel.SelectBuilder) squirrel.SelectBuilder {
		builder = builder.Where(squirrel.Eq{"b.podcast_id": filter.PodcastID})
		if filter.SlotID != nil {
			builder = builder.Where(squirrel.Eq{"b.slot_id": *filter.SlotID})
		}
		if filter.Search != nil && *filter.Search != "" {
			pattern := "%" + *filter.Search + "%"
			builder = builder.Where(squirrel.Or{
				squirrel.ILike{"b.member_name": pattern},
				squirrel.ILike{"b.member_email": pattern},
			})
		}
		return builder
	}

	selectBuilder = applyFilter(selectBuilder).
		OrderBy("b.created_at DESC, b.id DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64((filter.Page - 1) * filter.Limit))
	countBuilder = applyFilter(countBuilder)

	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: ListByPodcast - build count query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: ListByPodcast - scan count: %v", ErrScanRow, err)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: ListByPodcast - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: ListByPodcast - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := r.scanBookings(rows)
	if err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

// ListByUser получает страницу бронирований участника и общее количество
func (r *Repository) ListByUser(ctx context.Context, userID int64, page, limit int) ([]*domain.Booking, int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	countQuery, countArgs, err := psqlbuilder.Select("COUNT(*)").
		From("bookings b").
		Where(squirrel.Eq{"b.user_id": userID}).
		ToSql()

	if err != nil {
		return nil, 0, fmt.Errorf("%w: ListByUser - build count query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: ListByUser - scan count: %v", ErrScanRow, err)
	}

	query, args, err := psqlbuilder.Select(bookingColumns).
		From("bookings b").
		Join("slots s ON s.id = b.slot_id").
		Where(squirrel.Eq{"b.user_id": userID}).
		OrderBy("s.date DESC, s.start_time DESC, b.id DESC").
		Limit(uint64(limit)).
		Offset(uint64((page - 1) * limit)).
		ToSql()

	if err != nil {
		return nil, 0, fmt.Errorf("%w: ListByUser - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: ListByUser - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := r.scanBookings(rows)
	if err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

// UpdateStatus обновляет статус бронирования и заметки администратора.
// Заметки остаются прежними, если adminNotes == nil.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, adminNotes *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if adminNotes != nil {
		builder = builder.Set("admin_notes", *adminNotes)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// StatsByUser считает бронирования участника по статусам.
// Completed — подтвержденные бронирования со слотом в прошлом.
func (r *Repository) StatsByUser(ctx context.Context, userID int64) (*domain.BookingStats, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"COUNT(*)",
		"COUNT(*) FILTER (WHERE b.status = 'pending')",
		"COUNT(*) FILTER (WHERE b.status = 'accepted')",
		"COUNT(*) FILTER (WHERE b.status = 'rejected')",
		"COUNT(*) FILTER (WHERE b.status = 'cancelled')",
		"COUNT(*) FILTER (WHERE b.status = 'accepted' AND (s.date + s.start_time) < NOW())",
	).
		From("bookings b").
		Join("slots s ON s.id = b.slot_id").
		Where(squirrel.Eq{"b.user_id": userID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: StatsByUser - build select query: %v", ErrBuildQuery, err)
	}

	var stats domain.BookingStats
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&stats.Total,
		&stats.Pending,
		&stats.Accepted,
		&stats.Rejected,
		&stats.Cancelled,
		&stats.Completed,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: StatsByUser - scan stats: %v", ErrScanRow, err)
	}

	return &stats, nil
}

func (r *Repository) scanBooking(row *sql.Row) (*domain.Booking, error) {
	var b domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.SlotID,
		&b.PodcastID,
		&b.UserID,
		&b.Status,
		&b.MemberName,
		&b.MemberEmail,
		&b.MemberMobile,
		&b.MemberChapter,
		&b.AdminNotes,
		&createdAt,
		&updatedAt,
		&b.SlotDate,
		&b.SlotStartTime,
		&b.SlotEndTime,
		&b.SlotCapacity,
		&b.SlotBookedCount,
		&b.SlotStatus,
	)
	if err != nil {
		return nil, err
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var b domain.Booking
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&b.ID,
			&b.SlotID,
			&b.PodcastID,
			&b.UserID,
			&b.Status,
			&b.MemberName,
			&b.MemberEmail,
			&b.MemberMobile,
			&b.MemberChapter,
			&b.AdminNotes,
			&createdAt,
			&updatedAt,
			&b.SlotDate,
			&b.SlotStartTime,
			&b.SlotEndTime,
			&b.SlotCapacity,
			&b.SlotBookedCount,
			&b.SlotStatus,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		b.CreatedAt = createdAt.Time
		b.UpdatedAt = updatedAt.Time

		bookings = append(bookings, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
