package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/crmlocal/api/internal/platform/database/schema"
	"github.com/crmlocal/api/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) List(context context.Context) ([]Prestation, error) {
	p := schema.CrmPrestationDefinition
	query := fmt.Sprintf("SELECT %s, %s, %s, %s, %s FROM %s ORDER BY %s ASC, %s ASC",
		p.Key, p.Label, p.BudgetCode, p.Category, p.Position, p.Table, p.Category, p.Position)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_prestations")
	}
	defer rows.Close()

	prestations := make([]Prestation, 0)
	for rows.Next() {
		var prestation Prestation
		if err := rows.Scan(&prestation.Key, &prestation.Label, &prestation.BudgetCode, &prestation.Category, &prestation.Position); err != nil {
			return nil, dberr.Wrap(err, "scan_prestation")
		}
		prestations = append(prestations, prestation)
	}
	return prestations, rows.Err()
}

func (repository *PostgresRepository) GetByKey(context context.Context, key string) (*Prestation, error) {
	p := schema.CrmPrestationDefinition
	query := fmt.Sprintf("SELECT %s, %s, %s, %s, %s FROM %s WHERE %s = $1",
		p.Key, p.Label, p.BudgetCode, p.Category, p.Position, p.Table, p.Key)

	prestation := &Prestation{}
	err := repository.db.QueryRow(context, query, key).Scan(
		&prestation.Key, &prestation.Label, &prestation.BudgetCode, &prestation.Category, &prestation.Position)
	if err != nil {
		return nil, dberr.Wrap(err, "get_prestation_by_key")
	}
	return prestation, nil
}

func (repository *PostgresRepository) Count(context context.Context) (int, error) {
	p := schema.CrmPrestationDefinition

	var count int
	err := repository.db.QueryRow(context,
		fmt.Sprintf("SELECT COUNT(*) FROM %s", p.Table)).Scan(&count)
	if err != nil {
		return 0, dberr.Wrap(err, "count_prestations")
	}
	return count, nil
}

func (repository *PostgresRepository) InsertAll(context context.Context, prestations []Prestation) error {
	p := schema.CrmPrestationDefinition

	rows := make([][]any, 0, len(prestations))
	for _, prestation := range prestations {
		rows = append(rows, []any{prestation.Key, prestation.Label, prestation.BudgetCode, prestation.Category, prestation.Position})
	}

	_, err := repository.db.CopyFrom(context,
		pgx.Identifier{"crm", "prestation_definition"},
		[]string{p.Key, p.Label, p.BudgetCode, p.Category, p.Position},
		pgx.CopyFromRows(rows))
	if err != nil {
		return dberr.Wrap(err, "insert_prestations")
	}
	return nil
}
