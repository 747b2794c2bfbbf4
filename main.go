package main

import (
	"bufio"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"syscall"

	"library-client/library"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	apiURL    string
	sessionDB string
)

func main() {
	_ = godotenv.Load(".env.local")

	rootCmd := &cobra.Command{
		Use:   "library-client",
		Short: "Terminal client for the e-librarian library service",
		Long: "Interactive client for the e-librarian REST API: browse and borrow books,\n" +
			"manage your borrowings and feedback, and run the admin console.",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := library.NewSessionStore(sessionDB)
			if err != nil {
				return fmt.Errorf("open session store: %w", err)
			}
			defer store.Close()

			app := library.NewApp(library.NewAPIClient(apiURL), store)
			runShell(app)
			return nil
		},
		SilenceUsage: true,
	}

	rootCmd.Flags().StringVar(&apiURL, "api", getEnv("LIBRARY_API_URL", "http://localhost:5000/api"),
		"base URL of the library API")
	rootCmd.Flags().StringVar(&sessionDB, "session-db", getEnv("LIBRARY_SESSION_DB", "session.db"),
		"path of the local session database")

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func runShell(app *library.App) {
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Println("Welcome to the E-Librarian client!")
	printHelp()

	if user, err := app.CurrentUser(); err == nil {
		fmt.Printf("\nLogged in as %s (%s)\n", user.Username, user.Role)
	} else {
		fmt.Println("\nNot logged in. Use 'login' or 'register' to get started.")
		fmt.Println("Default admin account: admin / admin123")
	}

	for {
		fmt.Print("\n> ")
		if !scanner.Scan() {
			break
		}
		cmd := strings.TrimSpace(scanner.Text())

		switch cmd {
		case "login":
			handleLogin(scanner, app)
		case "register":
			handleRegister(scanner, app)
		case "reset password":
			handleResetPassword(scanner, app)
		case "logout":
			handleLogout(app)
		case "whoami":
			handleWhoami(app)
		case "books":
			handleBooks(app, "")
		case "search":
			handleSearch(scanner, app)
		case "book":
			handleBookDetail(scanner, app)
		case "categories":
			handleCategories(app)
		case "borrow":
			handleBorrow(scanner, app)
		case "borrowings":
			handleBorrowings(app)
		case "return":
			handleReturn(scanner, app)
		case "renew":
			handleRenew(scanner, app)
		case "rate":
			handleRate(scanner, app)
		case "profile":
			handleProfile(scanner, app)
		case "feedback":
			handleSubmitFeedback(scanner, app)
		case "my feedback":
			handleMyFeedbacks(app)
		case "admin":
			handleAdminOverview(app)
		case "add book":
			handleAddBook(scanner, app)
		case "update book":
			handleUpdateBook(scanner, app)
		case "delete book":
			handleDeleteBook(scanner, app)
		case "users":
			handleUsers(app)
		case "admin feedback":
			handleAdminFeedbacks(app)
		case "reply feedback":
			handleReplyFeedback(scanner, app)
		case "help":
			printHelp()
		case "exit":
			fmt.Println("Goodbye!")
			return
		case "":
			// ignore blank lines
		default:
			fmt.Println("Unknown command. Type 'help' for the available commands.")
		}
	}
}

func printHelp() {
	fmt.Println("Available commands:")
	fmt.Println("  Account:    login, register, reset password, logout, whoami, profile")
	fmt.Println("  Catalog:    books, search, book, categories, borrow")
	fmt.Println("  Borrowings: borrowings, return, renew, rate")
	fmt.Println("  Feedback:   feedback, my feedback")
	fmt.Println("  Admin:      admin, add book, update book, delete book, users, admin feedback, reply feedback")
	fmt.Println("  System:     help, exit")
}

// readPassword securely reads a password with masking.
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", err
	}
	fmt.Println()
	return strings.TrimSpace(string(bytePassword)), nil
}

func readLine(sc *bufio.Scanner, prompt string) (string, bool) {
	fmt.Print(prompt)
	if !sc.Scan() {
		return "", false
	}
	return strings.TrimSpace(sc.Text()), true
}

func readID(sc *bufio.Scanner, prompt string) (int64, bool) {
	text, ok := readLine(sc, prompt)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		fmt.Printf("Invalid ID: %s\n", text)
		return 0, false
	}
	return id, true
}

// confirm asks before every state-changing action that warrants it.
func confirm(sc *bufio.Scanner, prompt string) bool {
	answer, ok := readLine(sc, prompt+" [y/N]: ")
	if !ok {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}

// guardNotice maps local guard failures to their user-facing notices. It
// returns true when err was a guard failure and has been reported.
func guardNotice(err error) bool {
	switch {
	case errors.Is(err, library.ErrNotLoggedIn):
		notice(msg("login_required"))
		return true
	case errors.Is(err, library.ErrNotAdmin):
		notice(msg("admin_only"))
		return true
	}
	return false
}
