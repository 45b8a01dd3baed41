package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/court-finder/db"
	"github.com/Dosada05/court-finder/models"
)

var ErrSportNotFound = errors.New("sport not found")

type SportRepository interface {
	Create(ctx context.Context, sport *models.Sport) error
	GetByID(ctx context.Context, id int) (*models.Sport, error)
	GetAll(ctx context.Context) ([]models.Sport, error)
	Update(ctx context.Context, sport *models.Sport) error
	Delete(ctx context.Context, exec SQLExecutor, id int) error
	DeleteLinks(ctx context.Context, exec SQLExecutor, sportID int) error
}

type sqlSportRepository struct {
	db      *sql.DB
	dialect db.Dialect
	caps    db.Capabilities
}

func NewSportRepository(conn *sql.DB, dialect db.Dialect, caps db.Capabilities) SportRepository {
	return &sqlSportRepository{db: conn, dialect: dialect, caps: caps}
}

func (r *sqlSportRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *sqlSportRepository) nameZhColumn() string {
	if r.caps.SportNameZh {
		return "name_zh"
	}
	return "NULL"
}

func (r *sqlSportRepository) Create(ctx context.Context, sport *models.Sport) error {
	if !r.caps.SportTables {
		return ErrSportsUnavailable
	}

	query := `INSERT INTO sports (name, slug) VALUES (?, ?)`
	args := []interface{}{sport.Name, sport.Slug}
	if r.caps.SportNameZh {
		query = `INSERT INTO sports (name, name_zh, slug) VALUES (?, ?, ?)`
		args = []interface{}{sport.Name, sport.NameZh, sport.Slug}
	}
	query = r.dialect.Rebind(query)

	if r.dialect.SupportsReturning() {
		if err := r.db.QueryRowContext(ctx, query+` RETURNING id`, args...).Scan(&sport.ID); err != nil {
			return fmt.Errorf("failed to insert sport: %w", err)
		}
		return nil
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to insert sport: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read sport id: %w", err)
	}
	sport.ID = int(id)
	return nil
}

func (r *sqlSportRepository) GetByID(ctx context.Context, id int) (*models.Sport, error) {
	if !r.caps.SportTables {
		return nil, ErrSportsUnavailable
	}
	query := r.dialect.Rebind(`SELECT id, name, ` + r.nameZhColumn() + `, slug FROM sports WHERE id = ?`)

	var sport models.Sport
	err := r.db.QueryRowContext(ctx, query, id).Scan(&sport.ID, &sport.Name, &sport.NameZh, &sport.Slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSportNotFound
		}
		return nil, err
	}
	return &sport, nil
}

func (r *sqlSportRepository) GetAll(ctx context.Context) ([]models.Sport, error) {
	sports := make([]models.Sport, 0)
	if !r.caps.SportTables {
		return sports, nil
	}
	query := `SELECT id, name, ` + r.nameZhColumn() + `, slug FROM sports ORDER BY name ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var sport models.Sport
		if scanErr := rows.Scan(&sport.ID, &sport.Name, &sport.NameZh, &sport.Slug); scanErr != nil {
			return nil, scanErr
		}
		sports = append(sports, sport)
	}

	// Критически важная проверка ошибки после цикла
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return sports, nil
}

func (r *sqlSportRepository) Update(ctx context.Context, sport *models.Sport) error {
	if !r.caps.SportTables {
		return ErrSportsUnavailable
	}

	query := `UPDATE sports SET name = ?, slug = ? WHERE id = ?`
	args := []interface{}{sport.Name, sport.Slug, sport.ID}
	if r.caps.SportNameZh {
		query = `UPDATE sports SET name = ?, name_zh = ?, slug = ? WHERE id = ?`
		args = []interface{}{sport.Name, sport.NameZh, sport.Slug, sport.ID}
	}

	result, err := r.db.ExecContext(ctx, r.dialect.Rebind(query), args...)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrSportNotFound)
}

func (r *sqlSportRepository) Delete(ctx context.Context, exec SQLExecutor, id int) error {
	if !r.caps.SportTables {
		return ErrSportsUnavailable
	}
	executor := r.getExecutor(exec)

	result, err := executor.ExecContext(ctx, r.dialect.Rebind(`DELETE FROM sports WHERE id = ?`), id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrSportNotFound)
}

func (r *sqlSportRepository) DeleteLinks(ctx context.Context, exec SQLExecutor, sportID int) error {
	if !r.caps.SportTables {
		return ErrSportsUnavailable
	}
	executor := r.getExecutor(exec)

	if _, err := executor.ExecContext(ctx, r.dialect.Rebind(`DELETE FROM venue_sports WHERE sport_id = ?`), sportID); err != nil {
		return fmt.Errorf("failed to delete links of sport %d: %w", sportID, err)
	}
	return nil
}
