package workload

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

func (repository *PostgresRepository) ListSites(context context.Context) ([]*Site, error) {
	s := schema.CrmWorkloadSite
	query := fmt.Sprintf("SELECT %s, %s, %s, %s FROM %s ORDER BY %s ASC, %s ASC",
		s.ID, s.Name, s.Position, s.CreatedAt, s.Table, s.Position, s.ID)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_workload_sites")
	}
	defer rows.Close()

	sites := make([]*Site, 0)
	byID := make(map[string]*Site)
	for rows.Next() {
		site := &Site{Cells: make([]Cell, 0)}
		if err := rows.Scan(&site.ID, &site.Name, &site.Position, &site.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_workload_site")
		}
		sites = append(sites, site)
		byID[site.ID] = site
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_workload_sites")
	}

	c := schema.CrmWorkloadCell
	cellRows, err := repository.db.Query(context,
		fmt.Sprintf("SELECT %s, %s, %s FROM %s ORDER BY %s ASC", c.SiteID, c.DayIndex, c.Value, c.Table, c.DayIndex))
	if err != nil {
		return nil, dberr.Wrap(err, "list_workload_cells")
	}
	defer cellRows.Close()

	for cellRows.Next() {
		var cell Cell
		if err := cellRows.Scan(&cell.SiteID, &cell.DayIndex, &cell.Value); err != nil {
			return nil, dberr.Wrap(err, "scan_workload_cell")
		}
		if site, ok := byID[cell.SiteID]; ok {
			site.Cells = append(site.Cells, cell)
		}
	}
	return sites, cellRows.Err()
}

func (repository *PostgresRepository) GetSite(context context.Context, id string) (*Site, error) {
	s := schema.CrmWorkloadSite

	site := &Site{Cells: make([]Cell, 0)}
	err := repository.db.QueryRow(context,
		fmt.Sprintf("SELECT %s, %s, %s, %s FROM %s WHERE %s = $1", s.ID, s.Name, s.Position, s.CreatedAt, s.Table, s.ID),
		id).Scan(&site.ID, &site.Name, &site.Position, &site.CreatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "get_workload_site")
	}
	return site, nil
}

func (repository *PostgresRepository) GetSiteByName(context context.Context, name string) (*Site, error) {
	s := schema.CrmWorkloadSite

	site := &Site{Cells: make([]Cell, 0)}
	err := repository.db.QueryRow(context,
		fmt.Sprintf("SELECT %s, %s, %s, %s FROM %s WHERE %s = $1", s.ID, s.Name, s.Position, s.CreatedAt, s.Table, s.Name),
		name).Scan(&site.ID, &site.Name, &site.Position, &site.CreatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "get_workload_site_by_name")
	}
	return site, nil
}

func (repository *PostgresRepository) MaxPosition(context context.Context) (int, error) {
	s := schema.CrmWorkloadSite

	var max int
	err := repository.db.QueryRow(context,
		fmt.Sprintf("SELECT COALESCE(MAX(%s), 0) FROM %s", s.Position, s.Table)).Scan(&max)
	if err != nil {
		return 0, dberr.Wrap(err, "max_workload_position")
	}
	return max, nil
}

func (repository *PostgresRepository) CreateSite(context context.Context, site *Site) error {
	s := schema.CrmWorkloadSite

	if site.CreatedAt.IsZero() {
		site.CreatedAt = time.Now()
	}

	_, err := repository.db.Exec(context,
		fmt.Sprintf("INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4)",
			s.Table, s.ID, s.Name, s.Position, s.CreatedAt),
		site.ID, site.Name, site.Position, site.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_workload_site")
	}
	return nil
}

func (repository *PostgresRepository) UpdateSite(context context.Context, site *Site) error {
	s := schema.CrmWorkloadSite

	_, err := repository.db.Exec(context,
		fmt.Sprintf("UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1", s.Table, s.Name, s.Position, s.ID),
		site.ID, site.Name, site.Position)
	if err != nil {
		return dberr.Wrap(err, "update_workload_site")
	}
	return nil
}

func (repository *PostgresRepository) DeleteSite(context context.Context, id string) error {
	s := schema.CrmWorkloadSite

	// Cells go with the site via ON DELETE CASCADE.
	tag, err := repository.db.Exec(context,
		fmt.Sprintf("DELETE FROM %s WHERE %s = $1", s.Table, s.ID), id)
	if err != nil {
		return dberr.Wrap(err, "delete_workload_site")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) SiteIDsExist(context context.Context, ids []string) (map[string]bool, error) {
	s := schema.CrmWorkloadSite

	rows, err := repository.db.Query(context,
		fmt.Sprintf("SELECT %s FROM %s WHERE %s = ANY($1)", s.ID, s.Table, s.ID), ids)
	if err != nil {
		return nil, dberr.Wrap(err, "check_workload_sites")
	}
	defer rows.Close()

	existing := make(map[string]bool, len(ids))
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, dberr.Wrap(err, "scan_workload_site_id")
		}
		existing[id] = true
	}
	return existing, rows.Err()
}

func (repository *PostgresRepository) UpsertCell(context context.Context, cell Cell) error {
	c := schema.CrmWorkloadCell
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4)
		ON CONFLICT (%s, %s) DO UPDATE SET %s = EXCLUDED.%s, %s = EXCLUDED.%s`,
		c.Table, c.SiteID, c.DayIndex, c.Value, c.UpdatedAt,
		c.SiteID, c.DayIndex, c.Value, c.Value, c.UpdatedAt, c.UpdatedAt)

	_, err := repository.db.Exec(context, query, cell.SiteID, cell.DayIndex, cell.Value, time.Now())
	if err != nil {
		return dberr.Wrap(err, "upsert_workload_cell")
	}
	return nil
}

func (repository *PostgresRepository) DeleteCell(context context.Context, siteID string, dayIndex int) error {
	c := schema.CrmWorkloadCell

	_, err := repository.db.Exec(context,
		fmt.Sprintf("DELETE FROM %s WHERE %s = $1 AND %s = $2", c.Table, c.SiteID, c.DayIndex),
		siteID, dayIndex)
	if err != nil {
		return dberr.Wrap(err, "delete_workload_cell")
	}
	return nil
}

func (repository *PostgresRepository) ReplacePlan(context context.Context, sites []*Site) error {
	s := schema.CrmWorkloadSite
	c := schema.CrmWorkloadCell

	tx, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_replace_plan")
	}
	defer tx.Rollback(context)

	if _, err := tx.Exec(context, fmt.Sprintf("DELETE FROM %s", c.Table)); err != nil {
		return dberr.Wrap(err, "wipe_workload_cells")
	}
	if _, err := tx.Exec(context, fmt.Sprintf("DELETE FROM %s", s.Table)); err != nil {
		return dberr.Wrap(err, "wipe_workload_sites")
	}

	now := time.Now()
	for _, site := range sites {
		if site.CreatedAt.IsZero() {
			site.CreatedAt = now
		}
		_, err := tx.Exec(context,
			fmt.Sprintf("INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4)",
				s.Table, s.ID, s.Name, s.Position, s.CreatedAt),
			site.ID, site.Name, site.Position, site.CreatedAt)
		if err != nil {
			return dberr.Wrap(err, "insert_plan_site")
		}

		for _, cell := range site.Cells {
			_, err := tx.Exec(context,
				fmt.Sprintf("INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4)",
					c.Table, c.SiteID, c.DayIndex, c.Value, c.UpdatedAt),
				site.ID, cell.DayIndex, cell.Value, now)
			if err != nil {
				return dberr.Wrap(err, "insert_plan_cell")
			}
		}
	}

	if err := tx.Commit(context); err != nil {
		return dberr.Wrap(err, "commit_replace_plan")
	}
	return nil
}
