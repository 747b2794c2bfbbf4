package main

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"library-client/library"
)

// handleAdminOverview is the admin console landing view: statistics cards,
// the popularity ranking, and the full catalog.
func handleAdminOverview(app *library.App) {
	overview, err := app.AdminOverview()
	if err != nil {
		if !guardNotice(err) {
			notice(fmt.Sprintf("%s: %v", msg("load_failed"), err))
		}
		return
	}

	fmt.Println("Admin Panel")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Total Users: %-8d Total Books: %-8d\n", overview.TotalUsers, overview.TotalBooks)
	fmt.Printf("Total Borrowings: %-8d Current Borrowings: %-8d\n",
		overview.TotalBorrowings, overview.CurrentBorrowings)

	if len(overview.RoleStats) > 0 {
		fmt.Print("Roles: ")
		for i, rs := range overview.RoleStats {
			if i > 0 {
				fmt.Print(", ")
			}
			fmt.Printf("%s=%d", rs.Role, rs.Count)
		}
		fmt.Println()
	}
	if len(overview.SpecialReaderStats) > 0 {
		fmt.Print("Special readers: ")
		for i, ss := range overview.SpecialReaderStats {
			if i > 0 {
				fmt.Print(", ")
			}
			fmt.Printf("%s=%d", ss.SpecialReaderType, ss.Count)
		}
		fmt.Println()
	}

	if len(overview.PopularBooks) > 0 {
		fmt.Println("\nMost borrowed books:")
		for i, p := range overview.PopularBooks {
			fmt.Printf("  %2d. %s - %s (%d borrowings)\n", i+1,
				truncateString(p.Title, 40), truncateString(p.Author, 25), p.BorrowCount)
		}
	}
	if len(overview.CategoryStats) > 0 {
		fmt.Println("\nBorrowings by category:")
		for _, c := range overview.CategoryStats {
			fmt.Printf("  %-20s %d\n", truncateString(c.Category, 20), c.BorrowCount)
		}
	}

	fmt.Println("\nAll books:")
	printBooksTable(overview.Books)
}

func handleAddBook(sc *bufio.Scanner, app *library.App) {
	title, ok := readLine(sc, "Title: ")
	if !ok {
		return
	}
	author, ok := readLine(sc, "Author: ")
	if !ok {
		return
	}
	isbn, ok := readLine(sc, "ISBN (optional): ")
	if !ok {
		return
	}
	category, ok := readLine(sc, "Category (optional): ")
	if !ok {
		return
	}
	publisher, ok := readLine(sc, "Publisher (optional): ")
	if !ok {
		return
	}
	quantityText, ok := readLine(sc, "Quantity [1]: ")
	if !ok {
		return
	}
	quantity := 1
	if quantityText != "" {
		q, err := strconv.Atoi(quantityText)
		if err != nil || q < 1 {
			fmt.Printf("Invalid quantity: %s\n", quantityText)
			return
		}
		quantity = q
	}
	description, ok := readLine(sc, "Description (optional): ")
	if !ok {
		return
	}

	resp, err := app.AddBook(library.NewBook{
		Title:         title,
		Author:        author,
		ISBN:          isbn,
		Category:      category,
		Publisher:     publisher,
		TotalQuantity: quantity,
		Description:   description,
	})
	if err != nil {
		if !guardNotice(err) {
			notice(fmt.Sprintf("%s: %v", msg("add_book_failed"), err))
		}
		return
	}
	if !resp.Success {
		notice(fallback(resp.Message, "add_book_failed"))
		return
	}
	notice(msg("add_book_ok"))
	handleBooks(app, "")
}

// handleUpdateBook edits an existing catalog entry; pressing enter keeps a
// field as it is.
func handleUpdateBook(sc *bufio.Scanner, app *library.App) {
	bookID, ok := readID(sc, "Book ID: ")
	if !ok {
		return
	}
	detail, err := app.BookDetail(bookID)
	if err != nil {
		if !guardNotice(err) {
			notice(fmt.Sprintf("%s: %v", msg("load_failed"), err))
		}
		return
	}
	if !detail.Success || detail.Book == nil {
		notice(fallback(detail.Message, "load_failed"))
		return
	}
	current := detail.Book

	title, ok := readLine(sc, fmt.Sprintf("Title [%s]: ", current.Title))
	if !ok {
		return
	}
	if title == "" {
		title = current.Title
	}
	author, ok := readLine(sc, fmt.Sprintf("Author [%s]: ", derefOr(current.Author, "")))
	if !ok {
		return
	}
	if author == "" {
		author = derefOr(current.Author, "")
	}
	category, ok := readLine(sc, fmt.Sprintf("Category [%s]: ", derefOr(current.Category, "")))
	if !ok {
		return
	}
	if category == "" {
		category = derefOr(current.Category, "")
	}
	quantityText, ok := readLine(sc, fmt.Sprintf("Total quantity [%d]: ", current.TotalQuantity))
	if !ok {
		return
	}
	quantity := current.TotalQuantity
	if quantityText != "" {
		q, err := strconv.Atoi(quantityText)
		if err != nil || q < 1 {
			fmt.Printf("Invalid quantity: %s\n", quantityText)
			return
		}
		quantity = q
	}

	resp, err := app.UpdateBook(bookID, library.NewBook{
		Title:         title,
		Author:        author,
		Category:      category,
		TotalQuantity: quantity,
	})
	if err != nil {
		if !guardNotice(err) {
			notice(fmt.Sprintf("%s: %v", msg("update_book_failed"), err))
		}
		return
	}
	if !resp.Success {
		notice(fallback(resp.Message, "update_book_failed"))
		return
	}
	notice(msg("update_book_ok"))
	handleBooks(app, "")
}

func handleDeleteBook(sc *bufio.Scanner, app *library.App) {
	bookID, ok := readID(sc, "Book ID: ")
	if !ok {
		return
	}
	if !confirm(sc, msg("delete_book_confirm")) {
		return
	}
	resp, err := app.DeleteBook(bookID)
	if err != nil {
		if !guardNotice(err) {
			notice(fmt.Sprintf("%s: %v", msg("delete_book_failed"), err))
		}
		return
	}
	if !resp.Success {
		notice(fallback(resp.Message, "delete_book_failed"))
		return
	}
	notice(msg("delete_book_ok"))
	handleBooks(app, "")
}

func handleUsers(app *library.App) {
	resp, err := app.Users()
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
	if len(resp.Users) == 0 {
		fmt.Println("No registered users.")
		return
	}
	fmt.Printf("%-5s %-20s %-26s %-15s %-8s %s\n", "ID", "Username", "Email", "Phone", "Role", "Since")
	fmt.Println(strings.Repeat("-", 90))
	for _, u := range resp.Users {
		fmt.Printf("%-5d %-20s %-26s %-15s %-8s %s\n",
			u.ID,
			truncateString(u.Username, 20),
			truncateString(derefOr(u.Email, "-"), 26),
			truncateString(derefOr(u.Phone, "-"), 15),
			u.Role,
			shortDate(u.CreatedAt))
	}
}

func handleAdminFeedbacks(app *library.App) {
	resp, err := app.AdminFeedbacks()
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
	printFeedbacks(resp.Feedbacks, true)
}

func handleReplyFeedback(sc *bufio.Scanner, app *library.App) {
	feedbackID, ok := readID(sc, "Feedback ID: ")
	if !ok {
		return
	}
	reply, ok := readLine(sc, "Reply: ")
	if !ok {
		return
	}

	resp, err := app.ReplyFeedback(feedbackID, reply)
	if err != nil {
		switch {
		case guardNotice(err):
		case err == library.ErrEmptyReply:
			fmt.Println(msg("reply_empty"))
		default:
			notice(fmt.Sprintf("%s: %v", msg("reply_failed"), err))
		}
		return
	}
	if !resp.Success {
		notice(fallback(resp.Message, "reply_failed"))
		return
	}
	notice(msg("reply_ok"))
	handleAdminFeedbacks(app)
}
