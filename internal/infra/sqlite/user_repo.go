package sqlite

import (
	"database/sql"
	"time"

	_ "modernc.org/sqlite"
)

// UserRepo remembers every chat that has talked to the assistant. The list is
// the audience for promo broadcasts.
type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(dsn string) (*UserRepo, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := migrateChats(db); err != nil {
		return nil, err
	}
	return &UserRepo{db: db}, nil
}

func migrateChats(db *sql.DB) error {
	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS chats (
    chat_id INTEGER PRIMARY KEY,
    first_seen_at TIMESTAMP NOT NULL
);
`)
	return err
}

func (r *UserRepo) SaveUser(chatID int64) error {
	// repeat contacts keep their original first_seen_at
	_, err := r.db.Exec(`INSERT INTO chats(chat_id, first_seen_at) VALUES(?, ?) ON CONFLICT(chat_id) DO NOTHING`, chatID, time.Now())
	return err
}

func (r *UserRepo) ListChatIDs() ([]int64, error) {
	rows, err := r.db.Query(`SELECT chat_id FROM chats ORDER BY first_seen_at, chat_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ids := make([]int64, 0, 128)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
