package client

import "context"

type Repository interface {
	List(context context.Context, filter ListFilter) ([]*Client, error)
	// ListChoices returns every client ordered by company then client name,
	// without contacts. Used by selection lists and the Excel export.
	ListChoices(context context.Context) ([]*Client, error)
	GetByID(context context.Context, id string) (*Client, error)
	Create(context context.Context, client *Client) error
	Update(context context.Context, client *Client) error
	Delete(context context.Context, id string) error

	AddContact(context context.Context, contact *Contact) error
	DeleteContact(context context.Context, clientID, contactID string) error
}
