package project

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrProjectNotFound = errors.New("project not found")

type Repository interface {
	Store(ctx context.Context, project Project) (int, error)
	GetAll(ctx context.Context, includeArchived bool) ([]Project, error)
	GetByID(ctx context.Context, id int) (Project, error)
	Update(ctx context.Context, project Project) (bool, error)
	SetPhaseBudgets(ctx context.Context, id int, budgets map[string]int64) (bool, error)
	SetArchived(ctx context.Context, id int, archived bool, archivedAt time.Time) (bool, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Store(ctx context.Context, project Project) (int, error) {
	query := `INSERT INTO project (name, city, client_name, billing_type, rate_cents, phase_budgets)
			  VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`

	budgetsJSON, err := marshalBudgets(project.PhaseBudgets)
	if err != nil {
		return 0, err
	}

	var id int
	err = r.db.QueryRow(ctx, query,
		project.Name,
		project.City,
		project.ClientName,
		string(project.BillingType),
		project.RateCents,
		budgetsJSON,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not store project: %w", err)
		log.Error(err)
		return 0, err
	}

	return id, nil
}

func (r *RepositoryImpl) GetAll(ctx context.Context, includeArchived bool) ([]Project, error) {
	archivedWhere := "WHERE archived = FALSE"
	if includeArchived {
		archivedWhere = ""
	}
	query := fmt.Sprintf(
		`SELECT id, name, city, client_name, billing_type, rate_cents, phase_budgets, archived, archived_at
		 FROM project %s ORDER BY name`, archivedWhere)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query projects: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			log.Error(err)
			return nil, err
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}

	return projects, nil
}

func (r *RepositoryImpl) GetByID(ctx context.Context, id int) (Project, error) {
	query := `SELECT id, name, city, client_name, billing_type, rate_cents, phase_budgets, archived, archived_at
			  FROM project WHERE id = $1`
	row := r.db.QueryRow(ctx, query, id)
	project, err := scanProject(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Project{}, ErrProjectNotFound
		}
		log.Error(err)
		return Project{}, err
	}
	return project, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, project Project) (bool, error) {
	query := `UPDATE project SET
				  name = $1,
				  city = $2,
				  client_name = $3,
				  billing_type = $4,
				  rate_cents = $5
			  WHERE id = $6`

	tag, err := r.db.Exec(ctx, query,
		project.Name,
		project.City,
		project.ClientName,
		string(project.BillingType),
		project.RateCents,
		project.ID,
	)
	if err != nil {
		err := fmt.Errorf("could not update project: %w", err)
		log.Error(err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *RepositoryImpl) SetPhaseBudgets(ctx context.Context, id int, budgets map[string]int64) (bool, error) {
	budgetsJSON, err := marshalBudgets(budgets)
	if err != nil {
		return false, err
	}

	tag, err := r.db.Exec(ctx, `UPDATE project SET phase_budgets = $1 WHERE id = $2`, budgetsJSON, id)
	if err != nil {
		err := fmt.Errorf("could not update phase budgets: %w", err)
		log.Error(err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *RepositoryImpl) SetArchived(ctx context.Context, id int, archived bool, archivedAt time.Time) (bool, error) {
	var archivedAtParam interface{}
	if archived {
		archivedAtParam = archivedAt
	}

	tag, err := r.db.Exec(ctx, `UPDATE project SET archived = $1, archived_at = $2 WHERE id = $3`,
		archived, archivedAtParam, id)
	if err != nil {
		err := fmt.Errorf("could not update archive state: %w", err)
		log.Error(err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func marshalBudgets(budgets map[string]int64) ([]byte, error) {
	if budgets == nil {
		budgets = map[string]int64{}
	}
	budgetsJSON, err := json.Marshal(budgets)
	if err != nil {
		err := fmt.Errorf("could not marshal phase budgets: %w", err)
		log.Error(err)
		return nil, err
	}
	return budgetsJSON, nil
}

func scanProject(row pgx.Row) (Project, error) {
	var project Project
	var billingType string
	var budgetsJSON []byte
	var archivedAt *time.Time
	if err := row.Scan(
		&project.ID,
		&project.Name,
		&project.City,
		&project.ClientName,
		&billingType,
		&project.RateCents,
		&budgetsJSON,
		&project.Archived,
		&archivedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Project{}, err
		}
		return Project{}, fmt.Errorf("could not scan project: %w", err)
	}
	project.BillingType = BillingType(billingType)
	if archivedAt != nil {
		project.ArchivedAt = *archivedAt
	}
	if len(budgetsJSON) > 0 {
		if err := json.Unmarshal(budgetsJSON, &project.PhaseBudgets); err != nil {
			return Project{}, fmt.Errorf("could not unmarshal phase budgets: %w", err)
		}
	}
	if project.PhaseBudgets == nil {
		project.PhaseBudgets = map[string]int64{}
	}
	return project, nil
}
