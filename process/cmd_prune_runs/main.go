package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/lib/pq"
)

// Deletes archived runs older than -days from a Postgres archive. Child rows go
// with them through the ON DELETE CASCADE constraints.
func main() {
	days := flag.Int("days", 90, "delete runs that started more than this many days ago")
	failedOnly := flag.Bool("failed-only", false, "only delete runs with status=failed")
	yes := flag.Bool("yes", false, "actually delete; without it only counts are printed")
	flag.Parse()

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN not set")
	}
	if *days < 1 {
		log.Fatal("days must be at least 1")
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	cutoff := time.Now().AddDate(0, 0, -*days)
	where := `started_at < $1`
	if *failedOnly {
		where += ` AND status = 'failed'`
	}

	var n int64
	if err := db.QueryRow(`SELECT count(*) FROM runs WHERE `+where, cutoff).Scan(&n); err != nil {
		log.Fatalf("count runs: %v", err)
	}
	if !*yes {
		fmt.Printf("dry run: %d runs started before %s would be deleted (pass -yes to delete)\n", n, cutoff.Format(time.RFC3339))
		return
	}
	res, err := db.Exec(`DELETE FROM runs WHERE `+where, cutoff)
	if err != nil {
		log.Fatalf("delete runs: %v", err)
	}
	deleted, _ := res.RowsAffected()
	fmt.Printf("prune done: runs deleted=%d\n", deleted)
}
