package sqlite

import (
	"database/sql"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ParikhVedant/pare/internal/domain"
)

type LeadRepo struct {
	db *sql.DB
}

func NewLeadRepo(dsn string) (*LeadRepo, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		return nil, err
	}
	return &LeadRepo{db: db}, nil
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS leads (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    session_id TEXT NOT NULL,
    location TEXT,
    requirement_type TEXT,
    quantity TEXT,
    name TEXT,
    phone TEXT,
    email TEXT,
    city TEXT,
    company_name TEXT,
    created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_leads_session_id ON leads(session_id);
`)
	return err
}

func (r *LeadRepo) SaveLead(sessionID string, lead *domain.LeadRecord) error {
	_, err := r.db.Exec(`INSERT INTO leads(session_id, location, requirement_type, quantity, name, phone, email, city, company_name, created_at) VALUES(?,?,?,?,?,?,?,?,?,?)`,
		sessionID,
		lead.Get("location"), lead.Get("requirement_type"), lead.Get("quantity"),
		lead.Get("name"), lead.Get("phone"), lead.Get("email"), lead.Get("city"), lead.Get("company_name"),
		time.Now())
	return err
}
