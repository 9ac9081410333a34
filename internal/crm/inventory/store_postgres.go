package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/crmlocal/api/internal/platform/database/schema"
	"github.com/crmlocal/api/internal/platform/dberr"
)

type PostgresFilterRepository struct {
	db *pgxpool.Pool
}

func NewPostgresFilterRepository(db *pgxpool.Pool) *PostgresFilterRepository {
	return &PostgresFilterRepository{db: db}
}

func (repository *PostgresFilterRepository) List(context context.Context) ([]*FilterLine, error) {
	f := schema.CrmFilterLine
	query := fmt.Sprintf("SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s FROM %s ORDER BY %s DESC",
		f.ID, f.Site, f.Equipment, f.Efficiency, f.FilterType, f.Dimensions,
		f.Quantity, f.OrderWeek, f.CreatedAt, f.UpdatedAt, f.Table, f.CreatedAt)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_filter_lines")
	}
	defer rows.Close()

	lines := make([]*FilterLine, 0)
	for rows.Next() {
		line := &FilterLine{}
		err := rows.Scan(&line.ID, &line.Site, &line.Equipment, &line.Efficiency,
			&line.FilterType, &line.Dimensions, &line.Quantity, &line.OrderWeek,
			&line.CreatedAt, &line.UpdatedAt)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_filter_line")
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func (repository *PostgresFilterRepository) GetByID(context context.Context, id string) (*FilterLine, error) {
	f := schema.CrmFilterLine
	query := fmt.Sprintf("SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s FROM %s WHERE %s = $1",
		f.ID, f.Site, f.Equipment, f.Efficiency, f.FilterType, f.Dimensions,
		f.Quantity, f.OrderWeek, f.CreatedAt, f.UpdatedAt, f.Table, f.ID)

	line := &FilterLine{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&line.ID, &line.Site, &line.Equipment, &line.Efficiency,
		&line.FilterType, &line.Dimensions, &line.Quantity, &line.OrderWeek,
		&line.CreatedAt, &line.UpdatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "get_filter_line")
	}
	return line, nil
}

func (repository *PostgresFilterRepository) Create(context context.Context, line *FilterLine) error {
	f := schema.CrmFilterLine
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		f.Table, f.ID, f.Site, f.Equipment, f.Efficiency, f.FilterType,
		f.Dimensions, f.Quantity, f.OrderWeek, f.CreatedAt, f.UpdatedAt)

	now := time.Now()
	if line.CreatedAt.IsZero() {
		line.CreatedAt = now
	}
	line.UpdatedAt = now

	_, err := repository.db.Exec(context, query,
		line.ID, line.Site, line.Equipment, line.Efficiency, line.FilterType,
		line.Dimensions, line.Quantity, line.OrderWeek, line.CreatedAt, line.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_filter_line")
	}
	return nil
}

func (repository *PostgresFilterRepository) Update(context context.Context, line *FilterLine) error {
	f := schema.CrmFilterLine
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6,
		%s = $7, %s = $8, %s = $9 WHERE %s = $1`,
		f.Table, f.Site, f.Equipment, f.Efficiency, f.FilterType,
		f.Dimensions, f.Quantity, f.OrderWeek, f.UpdatedAt, f.ID)

	line.UpdatedAt = time.Now()
	_, err := repository.db.Exec(context, query,
		line.ID, line.Site, line.Equipment, line.Efficiency, line.FilterType,
		line.Dimensions, line.Quantity, line.OrderWeek, line.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_filter_line")
	}
	return nil
}

func (repository *PostgresFilterRepository) Delete(context context.Context, id string) error {
	f := schema.CrmFilterLine

	tag, err := repository.db.Exec(context,
		fmt.Sprintf("DELETE FROM %s WHERE %s = $1", f.Table, f.ID), id)
	if err != nil {
		return dberr.Wrap(err, "delete_filter_line")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

type PostgresBeltRepository struct {
	db *pgxpool.Pool
}

func NewPostgresBeltRepository(db *pgxpool.Pool) *PostgresBeltRepository {
	return &PostgresBeltRepository{db: db}
}

func (repository *PostgresBeltRepository) List(context context.Context) ([]*BeltLine, error) {
	b := schema.CrmBeltLine
	query := fmt.Sprintf("SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s FROM %s ORDER BY %s DESC",
		b.ID, b.Site, b.Equipment, b.BeltType, b.Dimensions,
		b.Quantity, b.OrderWeek, b.CreatedAt, b.UpdatedAt, b.Table, b.CreatedAt)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_belt_lines")
	}
	defer rows.Close()

	lines := make([]*BeltLine, 0)
	for rows.Next() {
		line := &BeltLine{}
		err := rows.Scan(&line.ID, &line.Site, &line.Equipment, &line.BeltType,
			&line.Dimensions, &line.Quantity, &line.OrderWeek, &line.CreatedAt, &line.UpdatedAt)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_belt_line")
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func (repository *PostgresBeltRepository) GetByID(context context.Context, id string) (*BeltLine, error) {
	b := schema.CrmBeltLine
	query := fmt.Sprintf("SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s FROM %s WHERE %s = $1",
		b.ID, b.Site, b.Equipment, b.BeltType, b.Dimensions,
		b.Quantity, b.OrderWeek, b.CreatedAt, b.UpdatedAt, b.Table, b.ID)

	line := &BeltLine{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&line.ID, &line.Site, &line.Equipment, &line.BeltType,
		&line.Dimensions, &line.Quantity, &line.OrderWeek, &line.CreatedAt, &line.UpdatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "get_belt_line")
	}
	return line, nil
}

func (repository *PostgresBeltRepository) Create(context context.Context, line *BeltLine) error {
	b := schema.CrmBeltLine
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		b.Table, b.ID, b.Site, b.Equipment, b.BeltType, b.Dimensions,
		b.Quantity, b.OrderWeek, b.CreatedAt, b.UpdatedAt)

	now := time.Now()
	if line.CreatedAt.IsZero() {
		line.CreatedAt = now
	}
	line.UpdatedAt = now

	_, err := repository.db.Exec(context, query,
		line.ID, line.Site, line.Equipment, line.BeltType, line.Dimensions,
		line.Quantity, line.OrderWeek, line.CreatedAt, line.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_belt_line")
	}
	return nil
}

func (repository *PostgresBeltRepository) Update(context context.Context, line *BeltLine) error {
	b := schema.CrmBeltLine
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5,
		%s = $6, %s = $7, %s = $8 WHERE %s = $1`,
		b.Table, b.Site, b.Equipment, b.BeltType, b.Dimensions,
		b.Quantity, b.OrderWeek, b.UpdatedAt, b.ID)

	line.UpdatedAt = time.Now()
	_, err := repository.db.Exec(context, query,
		line.ID, line.Site, line.Equipment, line.BeltType, line.Dimensions,
		line.Quantity, line.OrderWeek, line.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_belt_line")
	}
	return nil
}

func (repository *PostgresBeltRepository) Delete(context context.Context, id string) error {
	b := schema.CrmBeltLine

	tag, err := repository.db.Exec(context,
		fmt.Sprintf("DELETE FROM %s WHERE %s = $1", b.Table, b.ID), id)
	if err != nil {
		return dberr.Wrap(err, "delete_belt_line")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
