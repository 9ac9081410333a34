package company

import (
	"context"
	"fmt"
	"time"

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

func (repository *PostgresRepository) GetByID(context context.Context, id string) (*Company, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s, %s, %s FROM %s WHERE %s = $1`,
		schema.CrmCompany.ID, schema.CrmCompany.Name, schema.CrmCompany.BillingAddress,
		schema.CrmCompany.Tag, schema.CrmCompany.IsActive, schema.CrmCompany.CreatedAt, schema.CrmCompany.UpdatedAt,
		schema.CrmCompany.Table, schema.CrmCompany.ID)

	c := &Company{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&c.ID, &c.Name, &c.BillingAddress, &c.Tag, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_company_by_id")
	}
	return c, nil
}

func (repository *PostgresRepository) GetByName(context context.Context, name string) (*Company, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s, %s, %s FROM %s WHERE %s = $1`,
		schema.CrmCompany.ID, schema.CrmCompany.Name, schema.CrmCompany.BillingAddress,
		schema.CrmCompany.Tag, schema.CrmCompany.IsActive, schema.CrmCompany.CreatedAt, schema.CrmCompany.UpdatedAt,
		schema.CrmCompany.Table, schema.CrmCompany.Name)

	c := &Company{}
	err := repository.db.QueryRow(context, query, name).Scan(
		&c.ID, &c.Name, &c.BillingAddress, &c.Tag, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_company_by_name")
	}
	return c, nil
}

func (repository *PostgresRepository) List(context context.Context, limit, offset int) ([]*Company, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s, %s, %s FROM %s ORDER BY %s ASC LIMIT $1 OFFSET $2`,
		schema.CrmCompany.ID, schema.CrmCompany.Name, schema.CrmCompany.BillingAddress,
		schema.CrmCompany.Tag, schema.CrmCompany.IsActive, schema.CrmCompany.CreatedAt, schema.CrmCompany.UpdatedAt,
		schema.CrmCompany.Table, schema.CrmCompany.Name)

	rows, err := repository.db.Query(context, query, limit, offset)
	if err != nil {
		return nil, dberr.Wrap(err, "list_companies")
	}
	defer rows.Close()

	companies := make([]*Company, 0)
	for rows.Next() {
		c := &Company{}
		if err := rows.Scan(&c.ID, &c.Name, &c.BillingAddress, &c.Tag, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_company")
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

func (repository *PostgresRepository) Count(context context.Context) (int, error) {
	var count int
	err := repository.db.QueryRow(context,
		fmt.Sprintf("SELECT COUNT(*) FROM %s", schema.CrmCompany.Table)).Scan(&count)
	if err != nil {
		return 0, dberr.Wrap(err, "count_companies")
	}
	return count, nil
}

func (repository *PostgresRepository) Create(context context.Context, company *Company) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		schema.CrmCompany.Table,
		schema.CrmCompany.ID, schema.CrmCompany.Name, schema.CrmCompany.BillingAddress,
		schema.CrmCompany.Tag, schema.CrmCompany.IsActive, schema.CrmCompany.CreatedAt, schema.CrmCompany.UpdatedAt)

	now := time.Now()
	if company.CreatedAt.IsZero() {
		company.CreatedAt = now
	}
	company.UpdatedAt = now

	_, err := repository.db.Exec(context, query,
		company.ID, company.Name, company.BillingAddress, company.Tag,
		company.IsActive, company.CreatedAt, company.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "create_company")
	}
	return nil
}

func (repository *PostgresRepository) Update(context context.Context, company *Company) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6 WHERE %s = $1`,
		schema.CrmCompany.Table,
		schema.CrmCompany.Name, schema.CrmCompany.BillingAddress, schema.CrmCompany.Tag,
		schema.CrmCompany.IsActive, schema.CrmCompany.UpdatedAt, schema.CrmCompany.ID)

	company.UpdatedAt = time.Now()
	_, err := repository.db.Exec(context, query,
		company.ID, company.Name, company.BillingAddress, company.Tag,
		company.IsActive, company.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "update_company")
	}
	return nil
}
