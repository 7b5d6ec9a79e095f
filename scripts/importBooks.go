package main

import (
	"bufio"
	"context"
	"flag"
	"goodreads/config"
	"goodreads/database"
	"goodreads/logger"
	"goodreads/store"
	"goodreads/utils"
	"os"
	"strings"
)

// Imports books by ISBN from Open Library.
//
//	go run ./scripts -file isbns.txt
//	go run ./scripts 9780140328721 9780261103573
func main() {
	file := flag.String("file", "", "file with one ISBN per line")
	flag.Parse()

	config.LoadConfig()
	logger.Init(config.AppConfig.Env)
	database.ConnectDb()

	isbns := flag.Args()
	if *file != "" {
		fromFile, err := readISBNs(*file)
		if err != nil {
			logger.Log.Fatalf("Failed to read %s: %v", *file, err)
		}
		isbns = append(isbns, fromFile...)
	}
	if len(isbns) == 0 {
		logger.Log.Fatal("No ISBNs given")
	}

	books := store.NewBookStore(database.Database.Db)
	client := utils.NewOpenLibraryClient(config.AppConfig.OpenLibraryURL)

	summary := utils.ImportISBNs(context.Background(), client, books, isbns)
	logger.Log.Infof("Import finished: %d inserted, %d skipped, %d failed", summary.Inserted, summary.Skipped, summary.Failed)
}

func readISBNs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var isbns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		isbns = append(isbns, line)
	}
	return isbns, scanner.Err()
}
