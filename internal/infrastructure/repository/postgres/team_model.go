package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

type teamTableModel struct {
	ID        int64          `db:"id"`
	PublicID  string         `db:"public_id"`
	Name      string         `db:"name"`
	IsMain    bool           `db:"is_main"`
	Location  sql.NullString `db:"location"`
	LogoURL   sql.NullString `db:"logo_url"`
	LeagueIDs pq.StringArray `db:"league_ids"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
	DeletedAt *time.Time     `db:"deleted_at"`
}

type teamInsertModel struct {
	PublicID  string         `db:"public_id"`
	Name      string         `db:"name"`
	IsMain    bool           `db:"is_main"`
	Location  string         `db:"location"`
	LogoURL   string         `db:"logo_url"`
	LeagueIDs pq.StringArray `db:"league_ids"`
}
