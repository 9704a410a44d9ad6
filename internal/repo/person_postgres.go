package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/salespilot/backoffice/internal/models"
)

type PostgresPersonRepository struct {
	db *sql.DB
}

func NewPostgresPersonRepository(db *sql.DB) *PostgresPersonRepository {
	return &PostgresPersonRepository{db: db}
}

func (r *PostgresPersonRepository) Upsert(ctx context.Context, p models.Person) (models.Person, error) {
	query := `INSERT INTO people (kind, name, email, phone, location)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (kind, name) DO UPDATE
		SET email = EXCLUDED.email, phone = EXCLUDED.phone, location = EXCLUDED.location
		RETURNING id`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := r.db.QueryRowContext(ctx, query, p.Kind, p.Name, p.Email, p.Phone, p.Location).Scan(&p.ID)
	return p, err
}

func (r *PostgresPersonRepository) Find(ctx context.Context, kind string) ([]models.Person, error) {
	query := `SELECT id, kind, name, email, phone, location FROM people WHERE kind = $1 ORDER BY name ASC`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var people []models.Person
	for rows.Next() {
		var p models.Person
		if err := rows.Scan(&p.ID, &p.Kind, &p.Name, &p.Email, &p.Phone, &p.Location); err != nil {
			return nil, err
		}
		people = append(people, p)
	}
	return people, rows.Err()
}

func (r *PostgresPersonRepository) GetByID(ctx context.Context, id int) (models.Person, error) {
	query := `SELECT id, kind, name, email, phone, location FROM people WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var p models.Person
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Kind, &p.Name, &p.Email, &p.Phone, &p.Location)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Person{}, ErrPersonNotFound
	}
	return p, err
}

func (r *PostgresPersonRepository) Delete(ctx context.Context, id int) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM people WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrPersonNotFound
	}
	return nil
}
