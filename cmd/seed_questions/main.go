package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/moodtunes/moodtunes-backend/internal/app"
	"github.com/moodtunes/moodtunes-backend/internal/platform/dbctx"
)

// Seeds the built-in probing question catalog without starting the server.
// App boot seeds too; this tool exists for migrations run out of band and
// for inspecting the catalog.
func main() {
	var list bool
	flag.BoolVar(&list, "list", false, "print the catalog after seeding")
	flag.Parse()

	application, err := app.New()
	if err != nil {
		fmt.Printf("init app: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	dbc := dbctx.New(context.Background(), nil)

	inserted, err := application.Services.QuestionBank.SeedDefaults(dbc)
	if err != nil {
		fmt.Printf("seed question catalog: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("question catalog: %d new rows\n", inserted)

	if list {
		rows, err := application.Services.QuestionBank.ListCatalog(dbc)
		if err != nil {
			fmt.Printf("list catalog: %v\n", err)
			os.Exit(1)
		}
		for _, q := range rows {
			fmt.Printf("%s  [%s/%s depth=%d] used=%d  %s\n", q.ID, q.Category, q.Language, q.Depth, q.UsageCount, q.Text)
		}
	}
}
