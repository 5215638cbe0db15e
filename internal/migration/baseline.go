package migration

import "gorm.io/gorm"

// Baseline is the version-0 procedure: it creates the core tables and
// indexes. The DDL is executed as-is against the migration transaction.
func Baseline(tx *gorm.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS chats (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL,
			deleted_at TIMESTAMPTZ
		)`,
		`CREATE INDEX IF NOT EXISTS idx_chats_user_id ON chats (user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_chats_updated_at ON chats (updated_at)`,
		`CREATE INDEX IF NOT EXISTS idx_chats_deleted_at ON chats (deleted_at)`,
		`CREATE TABLE IF NOT EXISTS messages (
			id TEXT PRIMARY KEY,
			chat_id TEXT NOT NULL REFERENCES chats (id) ON DELETE CASCADE,
			content TEXT NOT NULL DEFAULT '',
			image_url TEXT,
			role VARCHAR(50) NOT NULL,
			prompt TEXT,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_chat_id ON messages (chat_id)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_created_at ON messages (created_at)`,
	}

	for _, stmt := range statements {
		if err := tx.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
