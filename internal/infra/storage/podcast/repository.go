package podcast

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/chapternet/CN-PodcastService/internal/domain"
	"github.com/chapternet/CN-PodcastService/pkg/dbmetrics"
	"github.com/chapternet/CN-PodcastService/pkg/psqlbuilder"
)

const podcastColumns = "id, podcaster_name, podcaster_image, about_podcaster, venue, " +
	"start_date, end_date, status, is_active, created_at, updated_at"

// Repository репозиторий для работы с подкастами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория подкастов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый подкаст
func (r *Repository) Create(ctx context.Context, p *domain.Podcast) (*domain.Podcast, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("podcasts").
		Columns(
			"podcaster_name",
			"podcaster_image",
			"about_podcaster",
			"venue",
			"start_date",
			"end_date",
			"status",
			"is_active",
		).
		Values(
			p.PodcasterName,
			p.PodcasterImage,
			p.AboutPodcaster,
			p.Venue,
			p.StartDate,
			p.EndDate,
			p.Status,
			p.IsActive,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return p, nil
}

// GetByID получает подкаст по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Podcast, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(podcastColumns).
		From("podcasts").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	p, err := scanPodcast(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrPodcastNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan podcast: %v", ErrScanRow, err)
	}

	return p, nil
}

// List получает страницу подкастов по фильтру и общее количество
func (r *Repository) List(ctx context.Context, filter domain.PodcastFilter) ([]*domain.Podcast, int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(podcastColumns).From("podcasts")
	countBuilder := psqlbuilder.Select("COUNT(*)").From("podcasts")

	applyFilter := func(b squirrel.SelectBuilder) squirrel.SelectBuilder {
		if filter.Search != nil && *filter.Search != "" {
			pattern := "%" + *filter.Search + "%"
			b = b.Where(squirrel.Or{
				squirrel.ILike{"podcaster_name": pattern},
				squirrel.ILike{"venue": pattern},
			})
		}
		if filter.Status != nil {
			b = b.Where(squirrel.Eq{"status": *filter.Status})
		}
		if filter.DateFrom != nil {
			b = b.Where(squirrel.GtOrEq{"start_date": *filter.DateFrom})
		}
		if filter.DateTo != nil {
			b = b.Where(squirrel.LtOrEq{"end_date": *filter.DateTo})
		}
		return b
	}

	selectBuilder = applyFilter(selectBuilder).
		OrderBy("start_date DESC, id DESC").
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

	podcasts, err := scanPodcasts(rows)
	if err != nil {
		return nil, 0, err
	}

	return podcasts, total, nil
}

// Update обновляет поля подкаста. Передаются только заполненные указатели.
func (r *Repository) Update(ctx context.Context, id int64, upd domain.PodcastUpdate) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Update("podcasts").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if upd.PodcasterName != nil {
		builder = builder.Set("podcaster_name", *upd.PodcasterName)
	}
	if upd.PodcasterImage != nil {
		builder = builder.Set("podcaster_image", *upd.PodcasterImage)
	}
	if upd.AboutPodcaster != nil {
		builder = builder.Set("about_podcaster", *upd.AboutPodcaster)
	}
	if upd.Venue != nil {
		builder = builder.Set("venue", *upd.Venue)
	}
	if upd.StartDate != nil {
		builder = builder.Set("start_date", *upd.StartDate)
	}
	if upd.EndDate != nil {
		builder = builder.Set("end_date", *upd.EndDate)
	}
	if upd.Status != nil {
		builder = builder.Set("status", *upd.Status)
	}
	if upd.IsActive != nil {
		builder = builder.Set("is_active", *upd.IsActive)
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
		return ErrPodcastNotFound
	}

	return nil
}

// Delete удаляет подкаст; слоты и бронирования каскадируются на уровне БД
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("podcasts").
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
		return ErrPodcastNotFound
	}

	return nil
}

func scanPodcast(row *sql.Row) (*domain.Podcast, error) {
	var p domain.Podcast
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&p.ID,
		&p.PodcasterName,
		&p.PodcasterImage,
		&p.AboutPodcaster,
		&p.Venue,
		&p.StartDate,
		&p.EndDate,
		&p.Status,
		&p.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}

func scanPodcasts(rows *sql.Rows) ([]*domain.Podcast, error) {
	podcasts := make([]*domain.Podcast, 0)

	for rows.Next() {
		var p domain.Podcast
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&p.ID,
			&p.PodcasterName,
			&p.PodcasterImage,
			&p.AboutPodcaster,
			&p.Venue,
			&p.StartDate,
			&p.EndDate,
			&p.Status,
			&p.IsActive,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanPodcasts - scan row: %v", ErrScanRow, err)
		}

		p.CreatedAt = createdAt.Time
		p.UpdatedAt = updatedAt.Time

		podcasts = append(podcasts, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanPodcasts - rows error: %v", ErrScanRow, err)
	}

	return podcasts, nil
}
