package client

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

// clientColumns is the joined select list shared by every client query:
// all crm.client columns plus the company name.
func clientColumns() string {
	c := schema.CrmClient
	return fmt.Sprintf(
		"c.%s, c.%s, co.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s",
		c.ID, c.CompanyID, schema.CrmCompany.Name, c.Name, c.Email, c.Phone, c.BillingAddress,
		c.Depannage, c.Astreinte, c.Tag, c.TechnicianName, c.IsActive, c.CreatedAt, c.UpdatedAt,
	)
}

func scanClient(row interface{ Scan(...any) error }) (*Client, error) {
	c := &Client{Contacts: make([]Contact, 0)}
	err := row.Scan(
		&c.ID, &c.CompanyID, &c.CompanyName, &c.Name, &c.Email, &c.Phone, &c.BillingAddress,
		&c.Depannage, &c.Astreinte, &c.Tag, &c.TechnicianName, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (repository *PostgresRepository) List(context context.Context, filter ListFilter) ([]*Client, error) {
	c := schema.CrmClient
	co := schema.CrmCompany
	ct := schema.CrmContact

	query := fmt.Sprintf(`SELECT %s FROM %s c JOIN %s co ON c.%s = co.%s`,
		clientColumns(), c.Table, co.Table, c.CompanyID, co.ID)

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
		and(fmt.Sprintf(`(c.%s ILIKE $%d OR c.%s ILIKE $%d OR c.%s ILIKE $%d OR c.%s ILIKE $%d
			OR c.%s ILIKE $%d OR c.%s ILIKE $%d OR c.%s ILIKE $%d
			OR co.%s ILIKE $%d OR co.%s ILIKE $%d
			OR EXISTS (
				SELECT 1 FROM %s ct
				WHERE ct.%s = c.%s AND (ct.%s ILIKE $%d OR ct.%s ILIKE $%d OR ct.%s ILIKE $%d)
			))`,
			c.Name, n, c.Email, n, c.Phone, n, c.BillingAddress, n,
			c.Depannage, n, c.Astreinte, n, c.Tag, n,
			co.Name, n, co.Tag, n,
			ct.Table, ct.ClientID, c.ID, ct.Name, n, ct.Email, n, ct.Phone, n))
	}
	if filter.Status != "" {
		args = append(args, filter.Status == "actif")
		and(fmt.Sprintf("c.%s = $%d", c.IsActive, len(args)))
	}
	if filter.Depannage != "" {
		args = append(args, filter.Depannage)
		and(fmt.Sprintf("c.%s = $%d", c.Depannage, len(args)))
	}
	if filter.Astreinte != "" {
		args = append(args, filter.Astreinte)
		and(fmt.Sprintf("c.%s = $%d", c.Astreinte, len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	args = append(args, limit)

	query += where + fmt.Sprintf(" ORDER BY c.%s DESC LIMIT $%d", c.CreatedAt, len(args))

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_clients")
	}
	defer rows.Close()

	clients := make([]*Client, 0)
	for rows.Next() {
		cl, err := scanClient(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_client")
		}
		clients = append(clients, cl)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_clients")
	}

	if err := repository.attachContacts(context, clients); err != nil {
		return nil, err
	}
	return clients, nil
}

func (repository *PostgresRepository) ListChoices(context context.Context) ([]*Client, error) {
	c := schema.CrmClient
	co := schema.CrmCompany

	query := fmt.Sprintf(`SELECT %s FROM %s c JOIN %s co ON c.%s = co.%s ORDER BY co.%s ASC, c.%s ASC`,
		clientColumns(), c.Table, co.Table, c.CompanyID, co.ID, co.Name, c.Name)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_client_choices")
	}
	defer rows.Close()

	clients := make([]*Client, 0)
	for rows.Next() {
		cl, err := scanClient(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_client_choice")
		}
		clients = append(clients, cl)
	}
	return clients, rows.Err()
}

func (repository *PostgresRepository) GetByID(context context.Context, id string) (*Client, error) {
	c := schema.CrmClient
	co := schema.CrmCompany

	query := fmt.Sprintf(`SELECT %s FROM %s c JOIN %s co ON c.%s = co.%s WHERE c.%s = $1`,
		clientColumns(), c.Table, co.Table, c.CompanyID, co.ID, c.ID)

	cl, err := scanClient(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_client_by_id")
	}

	if err := repository.attachContacts(context, []*Client{cl}); err != nil {
		return nil, err
	}
	return cl, nil
}

// attachContacts batch-loads contacts for the given clients in one query.
func (repository *PostgresRepository) attachContacts(context context.Context, clients []*Client) error {
	if len(clients) == 0 {
		return nil
	}

	ids := make([]string, 0, len(clients))
	byID := make(map[string]*Client, len(clients))
	for _, cl := range clients {
		ids = append(ids, cl.ID)
		byID[cl.ID] = cl
	}

	ct := schema.CrmContact
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s, %s FROM %s WHERE %s = ANY($1) ORDER BY %s ASC`,
		ct.ID, ct.ClientID, ct.Name, ct.Email, ct.Phone, ct.CreatedAt,
		ct.Table, ct.ClientID, ct.Name)

	rows, err := repository.db.Query(context, query, ids)
	if err != nil {
		return dberr.Wrap(err, "list_contacts")
	}
	defer rows.Close()

	for rows.Next() {
		contact := Contact{}
		if err := rows.Scan(&contact.ID, &contact.ClientID, &contact.Name, &contact.Email, &contact.Phone, &contact.CreatedAt); err != nil {
			return dberr.Wrap(err, "scan_contact")
		}
		if cl, ok := byID[contact.ClientID]; ok {
			cl.Contacts = append(cl.Contacts, contact)
		}
	}
	return rows.Err()
}

func (repository *PostgresRepository) Create(context context.Context, client *Client) error {
	c := schema.CrmClient
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		c.Table,
		c.ID, c.CompanyID, c.Name, c.Email, c.Phone, c.BillingAddress,
		c.Depannage, c.Astreinte, c.Tag, c.TechnicianName, c.IsActive, c.CreatedAt, c.UpdatedAt)

	now := time.Now()
	if client.CreatedAt.IsZero() {
		client.CreatedAt = now
	}
	client.UpdatedAt = now

	_, err := repository.db.Exec(context, query,
		client.ID, client.CompanyID, client.Name, client.Email, client.Phone, client.BillingAddress,
		client.Depannage, client.Astreinte, client.Tag, client.TechnicianName, client.IsActive,
		client.CreatedAt, client.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "create_client")
	}

	for i := range client.Contacts {
		client.Contacts[i].ClientID = client.ID
		if err := repository.AddContact(context, &client.Contacts[i]); err != nil {
			return err
		}
	}
	return nil
}

func (repository *PostgresRepository) Update(context context.Context, client *Client) error {
	c := schema.CrmClient
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6,
		%s = $7, %s = $8, %s = $9, %s = $10, %s = $11, %s = $12 WHERE %s = $1`,
		c.Table,
		c.CompanyID, c.Name, c.Email, c.Phone, c.BillingAddress,
		c.Depannage, c.Astreinte, c.Tag, c.TechnicianName, c.IsActive, c.UpdatedAt, c.ID)

	client.UpdatedAt = time.Now()
	_, err := repository.db.Exec(context, query,
		client.ID, client.CompanyID, client.Name, client.Email, client.Phone, client.BillingAddress,
		client.Depannage, client.Astreinte, client.Tag, client.TechnicianName, client.IsActive,
		client.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "update_client")
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	c := schema.CrmClient

	// Contacts are removed by the ON DELETE CASCADE constraint.
	tag, err := repository.db.Exec(context,
		fmt.Sprintf("DELETE FROM %s WHERE %s = $1", c.Table, c.ID), id)
	if err != nil {
		return dberr.Wrap(err, "delete_client")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) AddContact(context context.Context, contact *Contact) error {
	ct := schema.CrmContact
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5, $6)`,
		ct.Table, ct.ID, ct.ClientID, ct.Name, ct.Email, ct.Phone, ct.CreatedAt)

	if contact.CreatedAt.IsZero() {
		contact.CreatedAt = time.Now()
	}

	_, err := repository.db.Exec(context, query,
		contact.ID, contact.ClientID, contact.Name, contact.Email, contact.Phone, contact.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_contact")
	}
	return nil
}

func (repository *PostgresRepository) DeleteContact(context context.Context, clientID, contactID string) error {
	ct := schema.CrmContact

	tag, err := repository.db.Exec(context,
		fmt.Sprintf("DELETE FROM %s WHERE %s = $1 AND %s = $2", ct.Table, ct.ID, ct.ClientID),
		contactID, clientID)
	if err != nil {
		return dberr.Wrap(err, "delete_contact")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
