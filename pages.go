package main

import (
	"bufio"
	"fmt"
	"strconv"

	"library-client/library"
)

// ------------------ Login page ------------------

// handleLogin is the one flow that surfaces server messages inline rather
// than through a blocking notice.
func handleLogin(sc *bufio.Scanner, app *library.App) {
	username, ok := readLine(sc, "Username: ")
	if !ok {
		return
	}
	password, err := readPassword("Password: ")
	if err != nil {
		fmt.Printf("Error reading password: %v\n", err)
		return
	}

	resp, err := app.Login(username, password)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if !resp.Success || resp.User == nil {
		fmt.Println(fallback(resp.Message, "login_failed"))
		return
	}
	fmt.Printf("Welcome, %s! You are logged in as %s.\n", resp.User.Username, resp.User.Role)
}

func handleRegister(sc *bufio.Scanner, app *library.App) {
	username, ok := readLine(sc, "Username: ")
	if !ok {
		return
	}
	password, err := readPassword("Password: ")
	if err != nil {
		fmt.Printf("Error reading password: %v\n", err)
		return
	}
	email, ok := readLine(sc, "Email (optional): ")
	if !ok {
		return
	}
	phone, ok := readLine(sc, "Phone (optional): ")
	if !ok {
		return
	}

	resp, err := app.Register(username, password, email, phone)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if !resp.Success {
		fmt.Println(fallback(resp.Message, "register_failed"))
		return
	}
	fmt.Println(msg("register_ok"))
}

func handleResetPassword(sc *bufio.Scanner, app *library.App) {
	username, ok := readLine(sc, "Username: ")
	if !ok {
		return
	}
	phone, ok := readLine(sc, "Registered phone: ")
	if !ok {
		return
	}
	newPassword, err := readPassword("New password: ")
	if err != nil {
		fmt.Printf("Error reading password: %v\n", err)
		return
	}

	resp, err := app.ResetPassword(username, phone, newPassword)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if !resp.Success {
		fmt.Println(fallback(resp.Message, "reset_failed"))
		return
	}
	fmt.Println(msg("reset_ok"))
}

func handleLogout(app *library.App) {
	if err := app.Logout(); err != nil {
		notice(fmt.Sprintf("Failed to log out: %v", err))
		return
	}
	fmt.Println(msg("logout_ok"))
}

func handleWhoami(app *library.App) {
	user, err := app.CurrentUser()
	if err != nil {
		guardNotice(err)
		return
	}
	fmt.Printf("%s (id %d, role %s)\n", user.Username, user.ID, user.Role)
	fmt.Printf("  Email: %s\n", derefOr(user.Email, "-"))
	fmt.Printf("  Phone: %s\n", derefOr(user.Phone, "-"))
	if user.SpecialReaderType != nil {
		fmt.Printf("  Special reader type: %s\n", *user.SpecialReaderType)
	}
	if user.CreatedAt != "" {
		fmt.Printf("  Member since: %s\n", shortDate(user.CreatedAt))
	}
}

// ------------------ Dashboard ------------------

func handleBooks(app *library.App, query string) {
	resp, err := app.Books(query)
	if err != nil {
		if !guardNotice(err) {
			notice(fmt.Sprintf("%s: %v", msg("load_failed"), err))
		}
		return
	}
	if !resp.Success {
		notice(fallback(resp.Message, "load_failed"))
		return
	}
	printBooksTable(resp.Books)
}

func handleSearch(sc *bufio.Scanner, app *library.App) {
	query, ok := readLine(sc, "Query (empty for all books): ")
	if !ok {
		return
	}
	handleBooks(app, query)
}

func handleBookDetail(sc *bufio.Scanner, app *library.App) {
	bookID, ok := readID(sc, "Book ID: ")
	if !ok {
		return
	}
	resp, err := app.BookDetail(bookID)
	if err != nil {
		if !guardNotice(err) {
			notice(fmt.Sprintf("%s: %v", msg("load_failed"), err))
		}
		return
	}
	if !resp.Success || resp.Book == nil {
		notice(fallback(resp.Message, "load_failed"))
		return
	}
	printBookCard(resp.Book)
}

func handleCategories(app *library.App) {
	resp, err := app.Categories()
	if err != nil {
		if !guardNotice(err) {
			notice(fmt.Sprintf("%s: %v", msg("load_failed"), err))
		}
		return
	}
	if !resp.Success {
		notice(fallback(resp.Message, "load_failed"))
		return
	}
	if len(resp.Categories) == 0 {
		fmt.Println("No categories yet.")
		return
	}
	for _, c := range resp.Categories {
		fmt.Printf("  %s\n", c)
	}
}

// handleBorrow is the BookCard action: fetch the book, refuse out-of-stock
// locally, confirm, then borrow and refresh the catalog view.
func handleBorrow(sc *bufio.Scanner, app *library.App) {
	if _, err := app.CurrentUser(); err != nil {
		guardNotice(err)
		return
	}

	bookID, ok := readID(sc, "Book ID: ")
	if !ok {
		return
	}
	detail, err := app.BookDetail(bookID)
	if err != nil {
		notice(fmt.Sprintf("%s: %v", msg("load_failed"), err))
		return
	}
	if !detail.Success || detail.Book == nil {
		notice(fallback(detail.Message, "load_failed"))
		return
	}
	book := detail.Book
	printBookCard(book)

	if book.AvailableQuantity <= 0 {
		notice(msg("out_of_stock"))
		return
	}
	if !confirm(sc, fmt.Sprintf("Borrow %q?", book.Title)) {
		return
	}

	resp, err := app.Borrow(book)
	if err != nil {
		if !guardNotice(err) {
			notice(fmt.Sprintf("%s: %v", msg("borrow_failed"), err))
		}
		return
	}
	if !resp.Success {
		notice(fallback(resp.Message, "borrow_failed"))
		return
	}
	notice(msg("borrow_ok"))
	if resp.DueDate != "" {
		fmt.Printf("Due date: %s\n", shortDate(resp.DueDate))
	}
	handleBooks(app, "")
}

// ------------------ Borrowings page ------------------

func handleBorrowings(app *library.App) {
	resp, err := app.MyBorrowings()
	if err != nil {
		if !guardNotice(err) {
			notice(fmt.Sprintf("%s: %v", msg("load_failed"), err))
		}
		return
	}
	if !resp.Success {
		notice(fallback(resp.Message, "load_failed"))
		return
	}
	printRecordsTable(resp.Records)
}

func handleReturn(sc *bufio.Scanner, app *library.App) {
	recordID, ok := readID(sc, "Record ID: ")
	if !ok {
		return
	}
	if !confirm(sc, "Confirm return?") {
		return
	}
	resp, err := app.Return(recordID)
	if err != nil {
		if !guardNotice(err) {
			notice(fmt.Sprintf("%s: %v", msg("return_failed"), err))
		}
		return
	}
	if !resp.Success {
		notice(fallback(resp.Message, "return_failed"))
		return
	}
	notice(msg("return_ok"))
	handleBorrowings(app)
}

func handleRenew(sc *bufio.Scanner, app *library.App) {
	recordID, ok := readID(sc, "Record ID: ")
	if !ok {
		return
	}
	if !confirm(sc, "Renew for another 30 days?") {
		return
	}
	resp, err := app.Renew(recordID)
	if err != nil {
		if !guardNotice(err) {
			notice(fmt.Sprintf("%s: %v", msg("renew_failed"), err))
		}
		return
	}
	if !resp.Success {
		notice(fallback(resp.Message, "renew_failed"))
		return
	}
	notice(msg("renew_ok"))
	if resp.NewDueDate != "" {
		fmt.Printf("New due date: %s\n", shortDate(resp.NewDueDate))
	}
	handleBorrowings(app)
}

// handleRate is the interactive star control: pick a value from 1 to 5 and
// commit it in one step. Already-rated records are displayed read-only in the
// borrowings table and the server rejects a second rating.
func handleRate(sc *bufio.Scanner, app *library.App) {
	recordID, ok := readID(sc, "Record ID: ")
	if !ok {
		return
	}
	text, ok := readLine(sc, "Rating (1-5): ")
	if !ok {
		return
	}
	rating, err := strconv.Atoi(text)
	if err != nil {
		fmt.Println(msg("rate_range"))
		return
	}
	fmt.Printf("Your rating: %s\n", formatStars(rating))

	resp, err := app.Rate(recordID, rating)
	if err != nil {
		switch {
		case guardNotice(err):
		case err == library.ErrInvalidRating:
			fmt.Println(msg("rate_range"))
		default:
			notice(fmt.Sprintf("%s: %v", msg("rate_failed"), err))
		}
		return
	}
	if !resp.Success {
		notice(fallback(resp.Message, "rate_failed"))
		return
	}
	notice(msg("rate_ok"))
	handleBorrowings(app)
}

// ------------------ Profile page ------------------

// handleProfile edits the contact fields. Pressing enter keeps the current
// value; the special reader type accepts an empty answer to go back to a
// regular reader.
func handleProfile(sc *bufio.Scanner, app *library.App) {
	user, err := app.CurrentUser()
	if err != nil {
		guardNotice(err)
		return
	}

	fmt.Printf("Editing profile for %s (username and role cannot be changed)\n", user.Username)

	email, ok := readLine(sc, fmt.Sprintf("Email [%s]: ", derefOr(user.Email, "")))
	if !ok {
		return
	}
	if email == "" {
		email = derefOr(user.Email, "")
	}

	phone, ok := readLine(sc, fmt.Sprintf("Phone [%s]: ", derefOr(user.Phone, "")))
	if !ok {
		return
	}
	if phone == "" {
		phone = derefOr(user.Phone, "")
	}

	fmt.Println("Special reader type: elderly, foreign, disabled, or empty for a regular reader")
	special, ok := readLine(sc, fmt.Sprintf("Special reader type [%s]: ", derefOr(user.SpecialReaderType, "")))
	if !ok {
		return
	}

	resp, err := app.UpdateProfile(email, phone, special)
	if err != nil {
		if !guardNotice(err) {
			notice(fmt.Sprintf("%s: %v", msg("profile_failed"), err))
		}
		return
	}
	if !resp.Success {
		notice(fallback(resp.Message, "profile_failed"))
		return
	}
	notice(msg("profile_ok"))
}

// ------------------ Feedback page ------------------

func handleSubmitFeedback(sc *bufio.Scanner, app *library.App) {
	if _, err := app.CurrentUser(); err != nil {
		guardNotice(err)
		return
	}

	fmt.Println("Feedback type: 1) suggestion  2) complaint  3) book request")
	choice, ok := readLine(sc, "Type [1]: ")
	if !ok {
		return
	}
	feedbackType := "suggestion"
	switch choice {
	case "", "1":
	case "2":
		feedbackType = "complaint"
	case "3":
		feedbackType = "request"
	default:
		fmt.Println("Unknown type, using 'suggestion'.")
	}

	content, ok := readLine(sc, "Content: ")
	if !ok {
		return
	}

	resp, err := app.SubmitFeedback(feedbackType, content)
	if err != nil {
		switch {
		case guardNotice(err):
		case err == library.ErrEmptyContent:
			fmt.Println(msg("feedback_empty"))
		default:
			notice(fmt.Sprintf("%s: %v", msg("feedback_failed"), err))
		}
		return
	}
	if !resp.Success {
		notice(fallback(resp.Message, "feedback_failed"))
		return
	}
	notice(msg("feedback_ok"))
	handleMyFeedbacks(app)
}

func handleMyFeedbacks(app *library.App) {
	resp, err := app.MyFeedbacks()
	if err != nil {
		if !guardNotice(err) {
			notice(fmt.Sprintf("%s: %v", msg("load_failed"), err))
		}
		return
	}
	if !resp.Success {
		notice(fallback(resp.Message, "load_failed"))
		return
	}
	printFeedbacks(resp.Feedbacks, false)
}
