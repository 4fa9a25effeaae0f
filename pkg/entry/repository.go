package entry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrEntryNotFound = errors.New("time entry not found")

type Filter struct {
	ProjectID int
	From      time.Time
	To        time.Time
}

type Repository interface {
	Store(ctx context.Context, entry TimeEntry) (int, error)
	GetAll(ctx context.Context, filter Filter) ([]TimeEntry, error)
	GetByID(ctx context.Context, id int) (TimeEntry, error)
	Update(ctx context.Context, entry TimeEntry) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Store(ctx context.Context, entry TimeEntry) (int, error) {
	query := `INSERT INTO time_entry (project_id, phase_code, occurred_on, minutes, notes)
			  VALUES ($1, $2, $3, $4, $5) RETURNING id`

	var id int
	err := r.db.QueryRow(ctx, query,
		entry.ProjectID,
		entry.PhaseCode,
		entry.OccurredOn.Format("2006-01-02"),
		entry.Minutes,
		entry.Notes,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not store time entry: %w", err)
		log.Error(err)
		return 0, err
	}

	return id, nil
}

func (r *RepositoryImpl) GetAll(ctx context.Context, filter Filter) ([]TimeEntry, error) {
	query := `SELECT id, project_id, phase_code, occurred_on, minutes, notes FROM time_entry`
	conditions := ""
	args := []interface{}{}
	addCondition := func(condition string, arg interface{}) {
		if conditions == "" {
			conditions = " WHERE "
		} else {
			conditions += " AND "
		}
		args = append(args, arg)
		conditions += fmt.Sprintf(condition, len(args))
	}
	if filter.ProjectID != 0 {
		addCondition("project_id = $%d", filter.ProjectID)
	}
	if !filter.From.IsZero() {
		addCondition("occurred_on >= $%d", filter.From.Format("2006-01-02"))
	}
	if !filter.To.IsZero() {
		addCondition("occurred_on <= $%d", filter.To.Format("2006-01-02"))
	}
	query += conditions + " ORDER BY occurred_on DESC, id DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query time entries: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var entries []TimeEntry
	for rows.Next() {
		var entry TimeEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.ProjectID,
			&entry.PhaseCode,
			&entry.OccurredOn,
			&entry.Minutes,
			&entry.Notes,
		); err != nil {
			err := fmt.Errorf("could not scan time entry: %w", err)
			log.Error(err)
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}

	return entries, nil
}

func (r *RepositoryImpl) GetByID(ctx context.Context, id int) (TimeEntry, error) {
	query := `SELECT id, project_id, phase_code, occurred_on, minutes, notes FROM time_entry WHERE id = $1`
	var entry TimeEntry
	err := r.db.QueryRow(ctx, query, id).Scan(
		&entry.ID,
		&entry.ProjectID,
		&entry.PhaseCode,
		&entry.OccurredOn,
		&entry.Minutes,
		&entry.Notes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return TimeEntry{}, ErrEntryNotFound
		}
		err := fmt.Errorf("could not get time entry: %w", err)
		log.Error(err)
		return TimeEntry{}, err
	}
	return entry, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, entry TimeEntry) (bool, error) {
	query := `UPDATE time_entry SET
				  project_id = $1,
				  phase_code = $2,
				  occurred_on = $3,
				  minutes = $4,
				  notes = $5
			  WHERE id = $6`
	tag, err := r.db.Exec(ctx, query,
		entry.ProjectID,
		entry.PhaseCode,
		entry.OccurredOn.Format("2006-01-02"),
		entry.Minutes,
		entry.Notes,
		entry.ID,
	)
	if err != nil {
		err := fmt.Errorf("could not update time entry: %w", err)
		log.Error(err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, id int) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM time_entry WHERE id = $1`, id)
	if err != nil {
		err := fmt.Errorf("could not delete time entry: %w", err)
		log.Error(err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
