package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/crmlocal/api/internal/crm/client"
	"github.com/crmlocal/api/internal/platform/apperr"
)

type Service struct {
	clients *client.Service
	logger  *slog.Logger
}

func NewService(clients *client.Service, logger *slog.Logger) *Service {
	return &Service{
		clients: clients,
		logger:  logger,
	}
}

// Result summarizes a completed import.
type Result struct {
	Rows    int `json:"rows"`
	Created int `json:"created"`
}

// Import parses an .xlsx stream and creates one client per row. Companies are
// resolved by name and created on the fly. The whole file is validated before
// anything is written; a row that fails on insert aborts with its row number.
func (service *Service) Import(context context.Context, reader io.Reader) (*Result, error) {
	sheet, err := ReadWorkbook(reader)
	if err != nil {
		return nil, err
	}

	rows, err := ParseRows(sheet)
	if err != nil {
		return nil, err
	}

	created := 0
	for _, row := range rows {
		input := client.CreateInput{
			CompanyName:    row.CompanyName,
			Name:           row.Name,
			Email:          row.Email,
			Phone:          row.Phone,
			BillingAddress: row.BillingAddress,
			Tag:            row.Tag,
		}
		if row.Depannage != nil {
			input.Depannage = *row.Depannage
		}
		if row.Astreinte != nil {
			input.Astreinte = *row.Astreinte
		}
		if row.Status != nil {
			active := *row.Status == "actif"
			input.IsActive = &active
		}

		if _, err := service.clients.Create(context, input); err != nil {
			if ae := apperr.As(err); ae != nil {
				return nil, apperr.ValidationError(fmt.Sprintf("Row %d: %s", row.Line, ae.Message))
			}
			return nil, err
		}
		created++
	}

	service.logger.Info("clients_imported", "rows", len(rows), "created", created)
	return &Result{Rows: len(rows), Created: created}, nil
}

// Export writes the full client list (company order, then client name) to the
// given writer as an .xlsx workbook.
func (service *Service) Export(context context.Context, writer io.Writer) error {
	clients, err := service.clients.ListChoices(context)
	if err != nil {
		return err
	}
	return WriteWorkbook(clients, writer)
}
