package sqlite

import "database/sql"

func RunMigrations(db *sql.DB) error {
	stmts := []string{

		`CREATE TABLE IF NOT EXISTS transactions (
			id TEXT PRIMARY KEY,
			method TEXT NOT NULL,
			amount TEXT NOT NULL,
			fee TEXT NOT NULL,
			total TEXT NOT NULL,
			status TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			details TEXT NOT NULL
		);`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
