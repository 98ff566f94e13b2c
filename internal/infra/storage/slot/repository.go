package slot

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/chapternet/CN-PodcastService/internal/domain"
	"github.com/chapternet/CN-PodcastService/pkg/dbmetrics"
	"github.com/chapternet/CN-PodcastService/pkg/psqlbuilder"
)

const slotColumns = "id, podcast_id, date, start_time, end_time, capacity, " +
	"booked_count, status, is_active, created_at, updated_at"

// Repository репозиторий для работы со слотами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateBatch вставляет пачку слотов одним запросом.
// Дубликаты по (podcast_id, date, start_time) молча пропускаются за счёт
// ON CONFLICT DO NOTHING, поэтому повторная генерация идемпотентна.
// Возвращает только реально созданные слоты; вызывающая сторона
// вычисляет пропущенные как разницу с запрошенными.
func (r *Repository) CreateBatch(ctx context.Context, slots []*domain.Slot) ([]*domain.Slot, error) {
	if len(slots) == 0 {
		return []*domain.Slot{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Insert("slots").
		Columns(
			"podcast_id",
			"date",
			"start_time",
			"end_time",
			"capacity",
			"booked_count",
			"status",
			"is_active",
		)

	for _, s := range slots {
		builder = builder.Values(
			s.PodcastID,
			s.Date,
			s.StartTime,
			s.EndTime,
			s.Capacity,
			s.BookedCount,
			s.Status,
			s.IsActive,
		)
	}

	query, args, err := builder.
		Suffix("ON CONFLICT (podcast_id, date, start_time) DO NOTHING RETURNING " + slotColumns).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - execute insert: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// GetByID получает слот по ID.
// Внутри транзакции добавляет FOR UPDATE, чтобы заблокировать строку
// на время проверки вместимости при создании бронирования.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns).
		From("slots").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	s, err := r.scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return s, nil
}

// List получает страницу слотов по фильтру и общее количество
func (r *Repository) List(ctx context.Context, filter domain.SlotFilter) ([]*domain.Slot, int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns).From("slots")
	countBuilder := psqlbuilder.Select("COUNT(*)").From("slots")

	applyFilter := func(b squirrel.SelectBuilder) squirrel.SelectBuilder {
		if filter.PodcastID != nil {
			b = b.Where(squirrel.Eq{"podcast_id": *filter.PodcastID})
		}
		if filter.Date != nil {
			b = b.Where(squirrel.Eq{"date": *filter.Date})
		}
		if filter.Status != nil {
			b = b.Where(squirrel.Eq{"status": *filter.Status})
		}
		if filter.StartFrom != nil {
			b = b.Where(squirrel.GtOrEq{"start_time": *filter.StartFrom})
		}
		return b
	}

	selectBuilder = applyFilter(selectBuilder).
		OrderBy("date ASC, start_time ASC, id ASC").
		Limit(uint64(filter.Limit)).
		Offset(uint64((filter.Page - 1) * filter.Limit))
	countBuilder = applyFilter(countBuilder)

	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build count query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: List - scan count: %v", ErrScanRow, err)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots, err := r.scanSlots(rows)
	if err != nil {
		return nil, 0, err
	}

	return slots, total, nil
}

// Update обновляет вместимость и/или статус слота.
// Уменьшение capacity ниже booked_count блокируется условием в WHERE;
// при нулевом числе затронутых строк делаем повторную выборку, чтобы
// отличить отсутствующий слот от нарушения вместимости.
func (r *Repository) Update(ctx context.Context, id int64, capacity *int, status *domain.SlotStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Update("slots").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if capacity != nil {
		builder = builder.
			Set("capacity", *capacity).
			Where(squirrel.LtOrEq{"booked_count": *capacity})
	}
	if status != nil {
		builder = builder.Set("status", *status)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		if capacity == nil {
			return ErrSlotNotFound
		}
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrCapacityBelowBooked
	}

	return nil
}

// IncrementBooked увеличивает счетчик бронирований на 1.
// Срабатывает только для активного доступного слота со свободными
// местами; при заполнении последнего места переводит статус в booked.
// Ноль затронутых строк означает, что слот нельзя забронировать.
func (r *Repository) IncrementBooked(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("booked_count", squirrel.Expr("booked_count + 1")).
		Set("status", squirrel.Expr(
			"CASE WHEN booked_count + 1 >= capacity THEN 'booked' ELSE status END")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.SlotAvailable}).
		Where(squirrel.Eq{"is_active": true}).
		Where(squirrel.Expr("booked_count < capacity")).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: IncrementBooked - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: IncrementBooked - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: IncrementBooked - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrSlotNotAvailable
	}

	return nil
}

// DecrementBooked уменьшает счетчик бронирований на 1 (не ниже нуля).
// Освободившееся место возвращает статус booked обратно в available;
// закрытый слот (closed) остаётся закрытым.
func (r *Repository) DecrementBooked(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("booked_count", squirrel.Expr("GREATEST(booked_count - 1, 0)")).
		Set("status", squirrel.Expr(
			"CASE WHEN status = 'booked' THEN 'available' ELSE status END")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DecrementBooked - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DecrementBooked - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DecrementBooked - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// Delete удаляет слот; бронирования каскадируются на уровне БД
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// DeleteByIDs удаляет несколько слотов одним запросом.
// Возвращает число реально удалённых строк; несуществующие ID не считаются ошибкой.
func (r *Repository) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slots").
		Where(squirrel.Eq{"id": ids}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByIDs - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByIDs - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByIDs - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

func (r *Repository) scanSlot(row *sql.Row) (*domain.Slot, error) {
	var s domain.Slot
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&s.ID,
		&s.PodcastID,
		&s.Date,
		&s.StartTime,
		&s.EndTime,
		&s.Capacity,
		&s.BookedCount,
		&s.Status,
		&s.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// scanSlots сканирует результаты запроса в слайс слотов
func (r *Repository) scanSlots(rows *sql.Rows) ([]*domain.Slot, error) {
	slots := make([]*domain.Slot, 0)

	for rows.Next() {
		var s domain.Slot
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&s.ID,
			&s.PodcastID,
			&s.Date,
			&s.StartTime,
			&s.EndTime,
			&s.Capacity,
			&s.BookedCount,
			&s.Status,
			&s.IsActive,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}

		s.CreatedAt = createdAt.Time
		s.UpdatedAt = updatedAt.Time

		slots = append(slots, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}
