// Command import_books bulk-loads a catalog into the library service through
// the admin API. It expects a CSV file with a header row of
// title,author,isbn,category,publisher,quantity,description and logs in with
// the admin account before pushing each row.
package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"library-client/library"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env.local")

	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <books.csv>\n", os.Args[0])
		os.Exit(1)
	}
	csvPath := os.Args[1]

	apiURL := getEnv("LIBRARY_API_URL", "http://localhost:5000/api")
	adminUser := getEnv("LIBRARY_ADMIN_USER", "admin")
	adminPassword := getEnv("LIBRARY_ADMIN_PASSWORD", "admin123")

	api := library.NewAPIClient(apiURL)

	login, err := api.Login(adminUser, adminPassword)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error logging in: %v\n", err)
		os.Exit(1)
	}
	if !login.Success || login.User == nil {
		fmt.Fprintf(os.Stderr, "Login rejected: %s\n", login.Message)
		os.Exit(1)
	}
	if !login.User.IsAdmin() {
		fmt.Fprintf(os.Stderr, "Account %q is not an admin\n", adminUser)
		os.Exit(1)
	}

	file, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening %s: %v\n", csvPath, err)
		os.Exit(1)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	// Skip the header row.
	if _, err := reader.Read(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading header: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Importing books from %s into %s...\n", csvPath, apiURL)

	successCount := 0
	errorCount := 0

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			fmt.Printf("ERROR - bad row: %v\n", err)
			errorCount++
			continue
		}

		book, err := rowToBook(row)
		if err != nil {
			fmt.Printf("ERROR - %v\n", err)
			errorCount++
			continue
		}

		fmt.Printf("Importing: %s by %s... ", book.Title, book.Author)

		resp, err := api.AddBook(book)
		if err != nil {
			fmt.Printf("ERROR - %v\n", err)
			errorCount++
			continue
		}
		if !resp.Success {
			fmt.Printf("REJECTED - %s\n", resp.Message)
			errorCount++
			continue
		}

		fmt.Println("SUCCESS")
		successCount++
	}

	fmt.Printf("\nImport complete!\n")
	fmt.Printf("Successfully imported: %d books\n", successCount)
	fmt.Printf("Errors: %d\n", errorCount)

	if successCount > 0 {
		books, err := api.ListBooks()
		if err != nil || !books.Success {
			return
		}
		fmt.Println("\nCatalog now contains:")
		fmt.Printf("%-5s %-50s %-30s\n", "ID", "Title", "Author")
		fmt.Println(strings.Repeat("-", 88))
		for _, b := range books.Books {
			author := "Unknown Author"
			if b.Author != nil {
				author = *b.Author
			}
			fmt.Printf("%-5d %-50s %-30s\n", b.ID, truncateString(b.Title, 50), truncateString(author, 30))
		}
	}
}

func rowToBook(row []string) (library.NewBook, error) {
	field := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	book := library.NewBook{
		Title:         field(0),
		Author:        field(1),
		ISBN:          field(2),
		Category:      field(3),
		Publisher:     field(4),
		TotalQuantity: 1,
		Description:   field(6),
	}
	if book.Title == "" {
		return book, fmt.Errorf("row has no title: %v", row)
	}
	if q := field(5); q != "" {
		quantity, err := strconv.Atoi(q)
		if err != nil || quantity < 1 {
			return book, fmt.Errorf("invalid quantity %q for %s", q, book.Title)
		}
		book.TotalQuantity = quantity
	}
	return book, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
