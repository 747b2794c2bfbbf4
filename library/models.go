package library

// User is the identity record the server hands back at login and the one
// persisted locally between runs. Optional fields come back as null from the
// API, hence the pointers.
type User struct {
	ID                int64   `json:"id"`
	Username          string  `json:"username"`
	Email             *string `json:"email"`
	Phone             *string `json:"phone"`
	Role              string  `json:"role"` // "reader" or "admin"
	SpecialReaderType *string `json:"special_reader_type"`
	CreatedAt         string  `json:"created_at,omitempty"`
}

// IsAdmin reports whether the identity may use the admin console.
func (u *User) IsAdmin() bool { return u != nil && u.Role == "admin" }

// Book mirrors the catalog rows served by the API. Quantities are maintained
// server-side; the client only displays them and refuses to borrow when
// AvailableQuantity is zero.
type Book struct {
	ID                int64   `json:"id"`
	Title             string  `json:"title"`
	Author            *string `json:"author"`
	ISBN              *string `json:"isbn"`
	Category          *string `json:"category"`
	Publisher         *string `json:"publisher"`
	TotalQuantity     int     `json:"total_quantity"`
	AvailableQuantity int     `json:"available_quantity"`
	Description       *string `json:"description"`
	CreatedAt         string  `json:"created_at,omitempty"`
}

// NewBook carries the fields an admin submits when adding or updating a book.
type NewBook struct {
	Title         string `json:"title"`
	Author        string `json:"author,omitempty"`
	ISBN          string `json:"isbn,omitempty"`
	Category      string `json:"category,omitempty"`
	Publisher     string `json:"publisher,omitempty"`
	TotalQuantity int    `json:"total_quantity,omitempty"`
	Description   string `json:"description,omitempty"`
}

// BorrowingRecord is one row of a user's borrowing history, joined with book
// metadata by the server.
type BorrowingRecord struct {
	ID         int64   `json:"id"`
	UserID     int64   `json:"user_id"`
	BookID     int64   `json:"book_id"`
	Title      string  `json:"title"`
	Author     string  `json:"author"`
	ISBN       string  `json:"isbn"`
	BorrowDate string  `json:"borrow_date"`
	DueDate    string  `json:"due_date"`
	ReturnDate *string `json:"return_date"`
	Status     string  `json:"status"` // "borrowed" or "returned"
	Rating     *int    `json:"rating"`
}

// Returned reports whether the record may be rated.
func (r *BorrowingRecord) Returned() bool { return r.Status == "returned" }

// Feedback is a user-submitted suggestion, complaint or book request.
// Username is only populated on the admin listing.
type Feedback struct {
	ID         int64   `json:"id"`
	UserID     int64   `json:"user_id"`
	Username   string  `json:"username,omitempty"`
	Type       string  `json:"type"` // suggestion, complaint, request
	Content    string  `json:"content"`
	Status     string  `json:"status"` // "pending" or "replied"
	AdminReply *string `json:"admin_reply"`
	CreatedAt  string  `json:"created_at"`
}

// PopularBook is one entry of the server-side popularity ranking.
type PopularBook struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	BorrowCount int    `json:"borrow_count"`
}

// RoleCount and friends are the grouped aggregates of the statistics
// endpoints, read-only to the client.
type RoleCount struct {
	Role  string `json:"role"`
	Count int    `json:"count"`
}

type SpecialReaderCount struct {
	SpecialReaderType string `json:"special_reader_type"`
	Count             int    `json:"count"`
}

type CategoryCount struct {
	Category    string `json:"category"`
	BorrowCount int    `json:"borrow_count"`
}

// Envelope is the server's uniform success/message wrapper. Every response
// type embeds it; the client hands it to callers without interpreting it.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type LoginResponse struct {
	Envelope
	User *User `json:"user,omitempty"`
}

type RegisterResponse struct {
	Envelope
	UserID int64 `json:"user_id,omitempty"`
}

type BooksResponse struct {
	Envelope
	Books []Book `json:"books"`
}

type BookResponse struct {
	Envelope
	Book *Book `json:"book,omitempty"`
}

type CategoriesResponse struct {
	Envelope
	Categories []string `json:"categories"`
}

type BorrowResponse struct {
	Envelope
	RecordID int64  `json:"record_id,omitempty"`
	DueDate  string `json:"due_date,omitempty"`
}

type RenewResponse struct {
	Envelope
	NewDueDate string `json:"new_due_date,omitempty"`
}

type BorrowingsResponse struct {
	Envelope
	Records []BorrowingRecord `json:"records"`
}

type SubmitFeedbackResponse struct {
	Envelope
	FeedbackID int64 `json:"feedback_id,omitempty"`
}

type FeedbacksResponse struct {
	Envelope
	Feedbacks []Feedback `json:"feedbacks"`
}

type UsersResponse struct {
	Envelope
	Users []User `json:"users"`
}

type UserStatisticsResponse struct {
	Envelope
	TotalUsers         int                  `json:"total_users"`
	RoleStats          []RoleCount          `json:"role_stats"`
	SpecialReaderStats []SpecialReaderCount `json:"special_reader_stats"`
}

type BorrowingStatisticsResponse struct {
	Envelope
	TotalBorrowings   int             `json:"total_borrowings"`
	CurrentBorrowings int             `json:"current_borrowings"`
	PopularBooks      []PopularBook   `json:"popular_books"`
	CategoryStats     []CategoryCount `json:"category_stats"`
}
