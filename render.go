package main

import (
	"fmt"
	"strings"

	"library-client/library"
)

// messages holds every user-facing string, looked up by key so wording lives
// in one place instead of inline literals scattered across the pages.
var messages = map[string]string{
	"login_required":      "Please login first.",
	"admin_only":          "Admin access required. Returning to the dashboard commands.",
	"login_failed":        "Login failed",
	"register_failed":     "Registration failed",
	"register_ok":         "Registration successful! Please login.",
	"reset_ok":            "Password reset successfully. Please login.",
	"reset_failed":        "Failed to reset password",
	"logout_ok":           "Logged out. See you next time!",
	"borrow_ok":           "Book borrowed successfully!",
	"borrow_failed":       "Failed to borrow book",
	"out_of_stock":        "Out of Stock - this book cannot be borrowed right now.",
	"return_ok":           "Book returned successfully!",
	"return_failed":       "Failed to return book",
	"renew_ok":            "Book renewed successfully!",
	"renew_failed":        "Failed to renew book",
	"rate_ok":             "Rating submitted. Thank you!",
	"rate_failed":         "Failed to submit rating",
	"rate_range":          "Rating must be a whole number between 1 and 5.",
	"profile_ok":          "Profile updated successfully!",
	"profile_failed":      "Failed to update profile",
	"feedback_ok":         "Feedback submitted. We will handle it as soon as possible!",
	"feedback_failed":     "Failed to submit feedback",
	"feedback_empty":      "Feedback content cannot be empty.",
	"reply_ok":            "Reply sent!",
	"reply_failed":        "Failed to send reply",
	"reply_empty":         "Reply text cannot be empty.",
	"add_book_ok":         "Book added successfully!",
	"add_book_failed":     "Failed to add book",
	"update_book_ok":      "Book updated successfully!",
	"update_book_failed":  "Failed to update book",
	"delete_book_ok":      "Book deleted successfully!",
	"delete_book_failed":  "Failed to delete book",
	"delete_book_confirm": "Are you sure you want to delete this book?",
	"no_books":            "No books found.",
	"no_records":          "No borrowing records. Start borrowing books to see your history here.",
	"no_feedbacks":        "No feedback submitted yet.",
	"load_failed":         "Failed to load data",
}

func msg(key string) string {
	if m, ok := messages[key]; ok {
		return m
	}
	return key
}

// fallback picks the server's message when it sent one, else the generic
// string for the action.
func fallback(serverMessage, key string) string {
	if strings.TrimSpace(serverMessage) != "" {
		return serverMessage
	}
	return msg(key)
}

// notice is the blocking-alert analog: a framed one-liner the user cannot
// miss between prompts.
func notice(text string) {
	fmt.Printf("\n*** %s ***\n", text)
}

func truncateString(s string, maxLength int) string {
	if len(s) <= maxLength {
		return s
	}
	if maxLength <= 3 {
		return s[:maxLength]
	}
	return s[:maxLength-3] + "..."
}

// derefOr unwraps optional API fields for display.
func derefOr(s *string, def string) string {
	if s == nil || *s == "" {
		return def
	}
	return *s
}

// formatStars renders a committed rating read-only, e.g. "★★★★☆ 4.0".
func formatStars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating) + fmt.Sprintf(" %d.0", rating)
}

// printBookCard is the card view used by detail and borrow flows: summary
// fields plus the stock line that drives the borrow action.
func printBookCard(b *library.Book) {
	fmt.Printf("\n%s\n", b.Title)
	fmt.Printf("  Author:    %s\n", derefOr(b.Author, "Unknown Author"))
	fmt.Printf("  Category:  %s\n", derefOr(b.Category, "Uncategorized"))
	fmt.Printf("  Publisher: %s\n", derefOr(b.Publisher, "Unknown"))
	if b.ISBN != nil && *b.ISBN != "" {
		fmt.Printf("  ISBN:      %s\n", *b.ISBN)
	}
	fmt.Printf("  Stock:     %d / %d\n", b.AvailableQuantity, b.TotalQuantity)
	if b.Description != nil && *b.Description != "" {
		fmt.Printf("  %s\n", *b.Description)
	}
	if b.AvailableQuantity <= 0 {
		fmt.Println("  [Out of Stock]")
	}
}

func printBooksTable(books []library.Book) {
	if len(books) == 0 {
		fmt.Println(msg("no_books"))
		return
	}
	fmt.Printf("%-5s %-35s %-22s %-16s %-9s\n", "ID", "Title", "Author", "Category", "Stock")
	fmt.Println(strings.Repeat("-", 92))
	for _, b := range books {
		stock := fmt.Sprintf("%d/%d", b.AvailableQuantity, b.TotalQuantity)
		if b.AvailableQuantity <= 0 {
			stock = "out"
		}
		fmt.Printf("%-5d %-35s %-22s %-16s %-9s\n",
			b.ID,
			truncateString(b.Title, 35),
			truncateString(derefOr(b.Author, "Unknown Author"), 22),
			truncateString(derefOr(b.Category, "-"), 16),
			stock)
	}
}

func printRecordsTable(records []library.BorrowingRecord) {
	if len(records) == 0 {
		fmt.Println(msg("no_records"))
		return
	}
	fmt.Printf("%-5s %-30s %-20s %-12s %-12s %-10s %s\n",
		"ID", "Book", "Author", "Borrowed", "Due", "Status", "Rating")
	fmt.Println(strings.Repeat("-", 110))
	for _, r := range records {
		rating := "-"
		if r.Returned() {
			if r.Rating != nil {
				rating = formatStars(*r.Rating)
			} else {
				rating = "not rated"
			}
		}
		fmt.Printf("%-5d %-30s %-20s %-12s %-12s %-10s %s\n",
			r.ID,
			truncateString(r.Title, 30),
			truncateString(r.Author, 20),
			shortDate(r.BorrowDate),
			shortDate(r.DueDate),
			r.Status,
			rating)
	}
}

// shortDate trims ISO timestamps down to the date part for table columns.
func shortDate(iso string) string {
	if len(iso) > 10 {
		return iso[:10]
	}
	return iso
}

func feedbackTypeLabel(t string) string {
	switch t {
	case "suggestion":
		return "Suggestion"
	case "complaint":
		return "Complaint"
	case "request":
		return "Book Request"
	}
	return t
}

func feedbackStatusLabel(status string) string {
	switch status {
	case "replied":
		return "Replied"
	case "pending":
		return "Pending"
	}
	return status
}

func printFeedbacks(feedbacks []library.Feedback, withUsername bool) {
	if len(feedbacks) == 0 {
		fmt.Println(msg("no_feedbacks"))
		return
	}
	for _, f := range feedbacks {
		header := fmt.Sprintf("#%d [%s] %s", f.ID, feedbackTypeLabel(f.Type), feedbackStatusLabel(f.Status))
		if withUsername && f.Username != "" {
			header += " - " + f.Username
		}
		fmt.Printf("\n%s (%s)\n", header, shortDate(f.CreatedAt))
		fmt.Printf("  %s\n", f.Content)
		if f.AdminReply != nil && *f.AdminReply != "" {
			fmt.Printf("  Reply: %s\n", *f.AdminReply)
		}
	}
}
