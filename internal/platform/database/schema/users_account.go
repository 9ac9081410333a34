package schema

// UsersAccountTable represents the 'users.account' table
type UsersAccountTable struct {
	Table        string
	ID           string
	Username     string
	PasswordHash string
	Role         string
	IsActive     string
	LastActiveAt string
	CreatedAt    string
	UpdatedAt    string
}

// UsersAccount is the schema definition for users.account
var UsersAccount = UsersAccountTable{
	Table:        "users.account",
	ID:           "id",
	Username:     "username",
	PasswordHash: "passwordhash",
	Role:         "role",
	IsActive:     "isactive",
	LastActiveAt: "lastactiveat",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

func (t UsersAccountTable) Columns() []string {
	return []string{t.ID, t.Username, t.PasswordHash, t.Role, t.IsActive, t.LastActiveAt, t.CreatedAt, t.UpdatedAt}
}
