package repository

import (
	"context"

	"github.com/deppfellow/students-api/internal/dberr"
	"github.com/deppfellow/students-api/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

// PgxQuerier is the subset of pgx used by the postgres repository.
// *pgxpool.Pool, *pgx.Conn and pgx.Tx all satisfy it.
type PgxQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStudentRepository stores students in the students table.
type PostgresStudentRepository struct {
	db PgxQuerier
}

func NewPostgresStudentRepository(db PgxQuerier) *PostgresStudentRepository {
	return &PostgresStudentRepository{db: db}
}

func (r *PostgresStudentRepository) List(ctx context.Context) ([]model.Student, error) {
	query := `
		SELECT id::text, name, email, cohort
		FROM students
		ORDER BY created_at, id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, dberr.FromPostgres(OpList, err)
	}

	students, err := pgx.CollectRows(rows, scanStudent)
	if err != nil {
		return nil, dberr.FromPostgres(OpList, errors.Wrap(err, "collecting students"))
	}

	if students == nil {
		students = []model.Student{}
	}
	return students, nil
}

func (r *PostgresStudentRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM students`).Scan(&n); err != nil {
		return 0, dberr.FromPostgres(OpCount, err)
	}
	return n, nil
}

func (r *PostgresStudentRepository) FindByEmail(ctx context.Context, email string) (*model.Student, error) {
	query := `
		SELECT id::text, name, email, cohort
		FROM students
		WHERE email = $1
		ORDER BY created_at, id
		LIMIT 1
	`

	return r.queryOne(ctx, OpFindByEmail, query, email)
}

func (r *PostgresStudentRepository) FindByID(ctx context.Context, id string) (*model.Student, error) {
	if err := checkUUID(OpFindByID, id); err != nil {
		return nil, err
	}

	query := `
		SELECT id::text, name, email, cohort
		FROM students
		WHERE id = $1
	`

	return r.queryOne(ctx, OpFindByID, query, id)
}

func (r *PostgresStudentRepository) DeleteByID(ctx context.Context, id string) (*model.Student, error) {
	if err := checkUUID(OpDeleteByID, id); err != nil {
		return nil, err
	}

	query := `
		DELETE FROM students
		WHERE id = $1
		RETURNING id::text, name, email, cohort
	`

	return r.queryOne(ctx, OpDeleteByID, query, id)
}

func (r *PostgresStudentRepository) ReplaceByID(ctx context.Context, id string, fields model.StudentFields) (*model.Student, error) {
	if err := checkUUID(OpReplaceByID, id); err != nil {
		return nil, err
	}

	if missing := fields.MissingFields(); len(missing) > 0 {
		return nil, dberr.NewValidation(OpReplaceByID, missing...)
	}

	query := `
		UPDATE students
		SET name = $2, email = $3, cohort = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING id::text, name, email, cohort
	`

	return r.queryOne(ctx, OpReplaceByID, query, id, fields.Name, fields.Email, fields.Cohort)
}

func (r *PostgresStudentRepository) Create(ctx context.Context, fields model.StudentFields) (*model.Student, error) {
	if missing := fields.MissingFields(); len(missing) > 0 {
		return nil, dberr.NewValidation(OpCreate, missing...)
	}

	query := `
		INSERT INTO students (name, email, cohort)
		VALUES ($1, $2, $3)
		RETURNING id::text, name, email, cohort
	`

	return r.queryOne(ctx, OpCreate, query, fields.Name, fields.Email, fields.Cohort)
}

func (r *PostgresStudentRepository) queryOne(ctx context.Context, op, query string, args ...any) (*model.Student, error) {
	var s model.Student
	if err := r.db.QueryRow(ctx, query, args...).Scan(&s.ID, &s.Name, &s.Email, &s.Cohort); err != nil {
		return nil, dberr.FromPostgres(op, err)
	}
	return &s, nil
}

func scanStudent(row pgx.CollectableRow) (model.Student, error) {
	var s model.Student
	err := row.Scan(&s.ID, &s.Name, &s.Email, &s.Cohort)
	return s, err
}

// checkUUID rejects identifiers postgres would fail to cast to uuid.
func checkUUID(op, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return dberr.NewMalformedID(op, id, err)
	}
	return nil
}
