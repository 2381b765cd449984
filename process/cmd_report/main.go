package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"resourceocr/models"
	"resourceocr/process/archive"
	"resourceocr/process/report"
)

func main() {
	id := flag.Uint("id", 0, "run id to print (default: latest completed run)")
	list := flag.Bool("list", false, "list recent runs instead")
	flag.Parse()

	gdb, err := archive.OpenFromEnv()
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	if gdb == nil {
		fmt.Fprintln(os.Stderr, "DB_DSN not set; export DB_DSN and retry")
		os.Exit(2)
	}

	if *list {
		runs, err := archive.List(gdb, 50)
		if err != nil {
			log.Fatalf("list runs: %v", err)
		}
		for _, r := range runs {
			fmt.Printf("%d|%s|%s|%s\n", r.ID, r.StartedAt.Format("2006-01-02 15:04:05"), r.Status, r.Error)
		}
		return
	}

	var run *models.Run
	if *id == 0 {
		run, err = archive.Latest(gdb)
	} else {
		run, err = archive.Get(gdb, *id)
	}
	if err != nil {
		log.Fatalf("load run: %v", err)
	}
	rows, missing, err := archive.Rows(run)
	if err != nil {
		log.Fatalf("decode run: %v", err)
	}
	fmt.Printf("Run %d started=%s status=%s dir=%s\n\n", run.ID, run.StartedAt.Format("2006-01-02 15:04:05"), run.Status, run.ScreenshotDir)
	if err := report.Write(os.Stdout, rows, missing); err != nil {
		log.Fatalf("report: %v", err)
	}
}
