package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"resourceocr/models"
	"resourceocr/process/archive"
)

func main() {
	role := flag.String("role", models.RoleViewer, "role of the new operator (administrator|viewer)")
	flag.Parse()
	if flag.NArg() < 2 {
		fmt.Println("usage: go run ./cmd/create_operator [-role administrator] <username> <password>")
		os.Exit(2)
	}
	username, password := flag.Arg(0), flag.Arg(1)

	gdb, err := archive.OpenFromEnv()
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	if gdb == nil {
		log.Fatal("DB_DSN not set in environment")
	}
	if err := archive.EnsureRoles(gdb); err != nil {
		log.Fatalf("roles: %v", err)
	}
	op, err := archive.CreateOperator(gdb, username, password, *role)
	if errors.Is(err, archive.ErrOperatorExists) {
		fmt.Printf("operator %s already exists\n", username)
		return
	}
	if err != nil {
		log.Fatalf("failed to create operator: %v", err)
	}
	fmt.Printf("created operator %s id=%d role=%s\n", op.Username, op.ID, *role)
}
