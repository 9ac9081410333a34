package serviceorder

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

func orderColumns() string {
	s := schema.CrmServiceOrder
	return fmt.Sprintf(
		"s.%s, s.%s, cl.%s, co.%s, s.%s, s.%s, s.%s, s.%s, s.%s, s.%s, s.%s, s.%s, s.%s, s.%s, s.%s",
		s.ID, s.ClientID, schema.CrmClient.Name, schema.CrmCompany.Name,
		s.PrestationKey, s.PrestationLabel, s.Category, s.BudgetCode,
		s.Frequency, s.FrequencyInterval, s.FrequencyUnit, s.Supplier,
		s.Status, s.CreatedAt, s.UpdatedAt,
	)
}

func orderFrom() string {
	s := schema.CrmServiceOrder
	cl := schema.CrmClient
	co := schema.CrmCompany
	return fmt.Sprintf("%s s JOIN %s cl ON s.%s = cl.%s JOIN %s co ON cl.%s = co.%s",
		s.Table, cl.Table, s.ClientID, cl.ID, co.Table, cl.CompanyID, co.ID)
}

func scanOrder(row interface{ Scan(...any) error }) (*Order, error) {
	o := &Order{}
	err := row.Scan(
		&o.ID, &o.ClientID, &o.ClientName, &o.CompanyName,
		&o.PrestationKey, &o.PrestationLabel, &o.Category, &o.BudgetCode,
		&o.Frequency, &o.FrequencyInterval, &o.FrequencyUnit, &o.Supplier,
		&o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (repository *PostgresRepository) List(context context.Context, filter ListFilter) ([]*Order, error) {
	s := schema.CrmServiceOrder

	query := fmt.Sprintf("SELECT %s FROM %s", orderColumns(), orderFrom())

	args := make([]any, 0, 4)
	where := ""
	and := func(clause string) {
		if where == "" {
			where = " WHERE " + clause
		} else {
			where += " AND " + clause
		}
	}

	if filter.Q != "" {
		args = append(args, "%"+filter.Q+"%")
		n := len(args)
		and(fmt.Sprintf("(s.%s ILIKE $%d OR s.%s ILIKE $%d OR s.%s ILIKE $%d OR cl.%s ILIKE $%d OR co.%s ILIKE $%d)",
			s.PrestationLabel, n, s.Category, n, s.BudgetCode, n,
			schema.CrmClient.Name, n, schema.CrmCompany.Name, n))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		and(fmt.Sprintf("s.%s = $%d", s.Category, len(args)))
	}
	if filter.Frequency != "" {
		args = append(args, filter.Frequency)
		and(fmt.Sprintf("s.%s = $%d", s.Frequency, len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	args = append(args, limit)

	query += where + fmt.Sprintf(" ORDER BY s.%s DESC LIMIT $%d", s.CreatedAt, len(args))

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_service_orders")
	}
	defer rows.Close()

	orders := make([]*Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_service_order")
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (repository *PostgresRepository) GetByID(context context.Context, id string) (*Order, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE s.%s = $1",
		orderColumns(), orderFrom(), schema.CrmServiceOrder.ID)

	o, err := scanOrder(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_service_order")
	}
	return o, nil
}

func (repository *PostgresRepository) Create(context context.Context, order *Order) error {
	s := schema.CrmServiceOrder
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		s.Table,
		s.ID, s.ClientID, s.PrestationKey, s.PrestationLabel, s.Category, s.BudgetCode,
		s.Frequency, s.FrequencyInterval, s.FrequencyUnit, s.Supplier, s.Status,
		s.CreatedAt, s.UpdatedAt)

	now := time.Now()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	order.UpdatedAt = now

	_, err := repository.db.Exec(context, query,
		order.ID, order.ClientID, order.PrestationKey, order.PrestationLabel,
		order.Category, order.BudgetCode, order.Frequency, order.FrequencyInterval,
		order.FrequencyUnit, order.Supplier, order.Status, order.CreatedAt, order.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_service_order")
	}
	return nil
}

func (repository *PostgresRepository) Update(context context.Context, order *Order) error {
	s := schema.CrmServiceOrder
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6,
		%s = $7, %s = $8, %s = $9, %s = $10, %s = $11 WHERE %s = $1`,
		s.Table,
		s.PrestationKey, s.PrestationLabel, s.Category, s.BudgetCode, s.Frequency,
		s.FrequencyInterval, s.FrequencyUnit, s.Supplier, s.Status, s.UpdatedAt, s.ID)

	order.UpdatedAt = time.Now()
	_, err := repository.db.Exec(context, query,
		order.ID, order.PrestationKey, order.PrestationLabel, order.Category,
		order.BudgetCode, order.Frequency, order.FrequencyInterval, order.FrequencyUnit,
		order.Supplier, order.Status, order.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_service_order")
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, clientID, orderID string) error {
	s := schema.CrmServiceOrder

	tag, err := repository.db.Exec(context,
		fmt.Sprintf("DELETE FROM %s WHERE %s = $1 AND %s = $2", s.Table, s.ID, s.ClientID),
		orderID, clientID)
	if err != nil {
		return dberr.Wrap(err, "delete_service_order")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
