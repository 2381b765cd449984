package archive

import (
	"database/sql"
	"fmt"
	"io"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// archiveTables are the tables Migrate creates.
var archiveTables = []string{"roles", "operators", "runs", "resources", "screenshots", "warnings"}

// InspectSchema prints row counts and foreign keys of the archive tables of a
// Postgres archive.
func InspectSchema(dsn string, w io.Writer) error {
	if dsn == "" {
		return fmt.Errorf("dsn is required")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	fmt.Fprintln(w, "Tables:")
	for _, t := range archiveTables {
		var exists bool
		if err := db.QueryRow(`SELECT EXISTS (SELECT 1 FROM pg_tables WHERE schemaname = current_schema() AND tablename = $1)`, t).Scan(&exists); err != nil {
			return fmt.Errorf("check %s: %w", t, err)
		}
		if !exists {
			fmt.Fprintf(w, "- %s: missing\n", t)
			continue
		}
		var n int64
		// table names come from the fixed list above
		if err := db.QueryRow(`SELECT count(*) FROM ` + t).Scan(&n); err != nil {
			return fmt.Errorf("count %s: %w", t, err)
		}
		fmt.Fprintf(w, "- %s: %d rows\n", t, n)
	}

	rows, err := db.Query(`
		SELECT
		  con.conname AS constraint_name,
		  rel.relname AS table_name,
		  confrel.relname AS referenced_table,
		  pg_get_constraintdef(con.oid) AS definition
		FROM pg_constraint con
		JOIN pg_class rel ON rel.oid = con.conrelid
		JOIN pg_class confrel ON confrel.oid = con.confrelid
		WHERE con.contype = 'f' AND rel.relname = ANY(string_to_array($1, ','))
		ORDER BY rel.relname, con.conname;
	`, strings.Join(archiveTables, ","))
	if err != nil {
		return fmt.Errorf("query constraints: %w", err)
	}
	defer rows.Close()

	fmt.Fprintln(w, "Foreign keys:")
	for rows.Next() {
		var cname, table, reftable string
		var def sql.NullString
		if err := rows.Scan(&cname, &table, &reftable, &def); err != nil {
			return fmt.Errorf("scan: %w", err)
		}
		fmt.Fprintf(w, "- %s: %s -> %s\n    def: %s\n", cname, table, reftable, def.String)
	}
	return rows.Err()
}
