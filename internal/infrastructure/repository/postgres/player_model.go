package postgres

import (
	"database/sql"
	"time"
)

type playerTableModel struct {
	ID        int64          `db:"id"`
	PublicID  string         `db:"public_id"`
	TeamID    string         `db:"team_id"`
	Number    int            `db:"number"`
	Name      string         `db:"name"`
	PhotoURL  sql.NullString `db:"photo_url"`
	Role      sql.NullString `db:"role"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
	DeletedAt *time.Time     `db:"deleted_at"`
}

type playerInsertModel struct {
	PublicID string `db:"public_id"`
	TeamID   string `db:"team_id"`
	Number   int    `db:"number"`
	Name     string `db:"name"`
	PhotoURL string `db:"photo_url"`
	Role     string `db:"role"`
}
