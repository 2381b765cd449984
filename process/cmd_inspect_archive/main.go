package main

import (
	"flag"
	"log"
	"os"

	"resourceocr/process/archive"
)

func main() {
	dsn := flag.String("dsn", os.Getenv("DB_DSN"), "Postgres DSN of the archive (defaults to DB_DSN)")
	flag.Parse()
	if err := archive.InspectSchema(*dsn, os.Stdout); err != nil {
		log.Fatalf("inspect: %v", err)
	}
}
