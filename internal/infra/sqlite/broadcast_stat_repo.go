package sqlite

import (
	"database/sql"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ParikhVedant/pare/internal/usecase"
)

// BroadcastStatRepo keeps the outcome of each promo broadcast so admins can
// review how many chats a campaign reached.
type BroadcastStatRepo struct {
	db *sql.DB
}

func NewBroadcastStatRepo(dsn string) (*BroadcastStatRepo, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := migratePromoBroadcasts(db); err != nil {
		return nil, err
	}
	return &BroadcastStatRepo{db: db}, nil
}

func migratePromoBroadcasts(db *sql.DB) error {
	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS promo_broadcasts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    audience INTEGER NOT NULL,
    sent INTEGER NOT NULL,
    failed INTEGER NOT NULL,
    sent_at TIMESTAMP NOT NULL
);
`)
	return err
}

func (r *BroadcastStatRepo) Save(stat usecase.BroadcastStat) error {
	if stat.CreatedAt.IsZero() {
		stat.CreatedAt = time.Now()
	}
	_, err := r.db.Exec(`INSERT INTO promo_broadcasts(audience, sent, failed, sent_at) VALUES(?,?,?,?)`, stat.Total, stat.Sent, stat.Failed, stat.CreatedAt)
	return err
}

func (r *BroadcastStatRepo) ListRecent(n int) ([]usecase.BroadcastStat, error) {
	if n <= 0 {
		n = 10
	}
	rows, err := r.db.Query(`SELECT audience, sent, failed, sent_at FROM promo_broadcasts ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]usecase.BroadcastStat, 0, n)
	for rows.Next() {
		var s usecase.BroadcastStat
		if err := rows.Scan(&s.Total, &s.Sent, &s.Failed, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
