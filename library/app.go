package library

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Guard and validation failures. These are decided locally, before any call
// leaves the client.
var (
	ErrNotLoggedIn   = errors.New("not logged in")
	ErrNotAdmin      = errors.New("admin role required")
	ErrOutOfStock    = errors.New("no copies available")
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	ErrEmptyReply    = errors.New("reply text cannot be empty")
	ErrEmptyContent  = errors.New("feedback content cannot be empty")
)

// App owns the per-page control flow: it reads the session before every
// protected operation, gates admin pages by role, issues the API calls, and
// keeps the persisted identity in step with profile changes. It holds no list
// state of its own; callers re-fetch after each successful mutation.
type App struct {
	api   *APIClient
	store *SessionStore
}

func NewApp(api *APIClient, store *SessionStore) *App {
	return &App{api: api, store: store}
}

// CurrentUser returns the persisted identity, or ErrNotLoggedIn when the
// session is absent.
func (a *App) CurrentUser() (*User, error) {
	user, err := a.store.Read()
	if errors.Is(err, ErrNoSession) {
		return nil, ErrNotLoggedIn
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (a *App) requireAdmin() (*User, error) {
	user, err := a.CurrentUser()
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin() {
		return nil, ErrNotAdmin
	}
	return user, nil
}

// ------------------ Auth ------------------

// Login exchanges credentials for an identity and persists it on success.
// The server's verdict is returned either way so the login screen can show
// its message inline.
func (a *App) Login(username, password string) (*LoginResponse, error) {
	resp, err := a.api.Login(username, password)
	if err != nil {
		return nil, err
	}
	if resp.Success && resp.User != nil {
		if err := a.store.Write(resp.User); err != nil {
			return nil, err
		}
	}
	return resp, nil
}

// Register creates an account. It does not log the user in; the flow returns
// to the login prompt on success.
func (a *App) Register(username, password, email, phone string) (*RegisterResponse, error) {
	return a.api.Register(username, password, email, phone)
}

func (a *App) ResetPassword(username, phone, newPassword string) (*Envelope, error) {
	return a.api.ResetPassword(username, phone, newPassword)
}

// Logout clears the persisted identity. No server call is made; the session
// is purely client-side.
func (a *App) Logout() error {
	return a.store.Clear()
}

// UpdateProfile submits the editable fields and, on success, rewrites the
// persisted identity so the next read reflects exactly what was submitted.
// An empty special reader type is normalized to absent. Username, role and id
// never change here.
func (a *App) UpdateProfile(email, phone, specialReaderType string) (*Envelope, error) {
	user, err := a.CurrentUser()
	if err != nil {
		return nil, err
	}

	var special *string
	if trimmed := strings.TrimSpace(specialReaderType); trimmed != "" {
		special = &trimmed
	}

	resp, err := a.api.UpdateProfile(user.ID, ProfileUpdate{
		Email:             email,
		Phone:             phone,
		SpecialReaderType: special,
	})
	if err != nil {
		return nil, err
	}
	if resp.Success {
		user.Email = &email
		user.Phone = &phone
		user.SpecialReaderType = special
		if err := a.store.Write(user); err != nil {
			return nil, err
		}
	}
	return resp, nil
}

// ------------------ Dashboard ------------------

// Books returns the catalog. A blank or whitespace-only query is the same as
// asking for the full list; anything else goes through the search endpoint.
// No filtering happens client-side.
func (a *App) Books(query string) (*BooksResponse, error) {
	if _, err := a.CurrentUser(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(query) == "" {
		return a.api.ListBooks()
	}
	return a.api.SearchBooks(query)
}

func (a *App) BookDetail(bookID int64) (*BookResponse, error) {
	if _, err := a.CurrentUser(); err != nil {
		return nil, err
	}
	return a.api.BookDetail(bookID)
}

func (a *App) Categories() (*CategoriesResponse, error) {
	if _, err := a.CurrentUser(); err != nil {
		return nil, err
	}
	return a.api.Categories()
}

// Borrow issues one borrow call for the acting identity. A book with no
// available copies is refused locally; the call never goes out.
func (a *App) Borrow(book *Book) (*BorrowResponse, error) {
	user, err := a.CurrentUser()
	if err != nil {
		return nil, err
	}
	if book.AvailableQuantity <= 0 {
		return nil, ErrOutOfStock
	}
	return a.api.Borrow(user.ID, book.ID)
}

// ------------------ Borrowings ------------------

func (a *App) MyBorrowings() (*BorrowingsResponse, error) {
	user, err := a.CurrentUser()
	if err != nil {
		return nil, err
	}
	return a.api.MyBorrowings(user.ID)
}

func (a *App) Return(recordID int64) (*Envelope, error) {
	if _, err := a.CurrentUser(); err != nil {
		return nil, err
	}
	return a.api.Return(recordID)
}

func (a *App) Renew(recordID int64) (*RenewResponse, error) {
	if _, err := a.CurrentUser(); err != nil {
		return nil, err
	}
	return a.api.Renew(recordID)
}

// Rate submits a 1-5 rating for a returned record. Whether the record is
// actually ratable (returned, not yet rated) is enforced by the server; the
// client only checks the range.
func (a *App) Rate(recordID int64, rating int) (*Envelope, error) {
	if _, err := a.CurrentUser(); err != nil {
		return nil, err
	}
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	return a.api.Rate(recordID, rating)
}

// ------------------ Feedback ------------------

func (a *App) SubmitFeedback(feedbackType, content string) (*SubmitFeedbackResponse, error) {
	user, err := a.CurrentUser()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	return a.api.SubmitFeedback(user.ID, feedbackType, content)
}

func (a *App) MyFeedbacks() (*FeedbacksResponse, error) {
	user, err := a.CurrentUser()
	if err != nil {
		return nil, err
	}
	return a.api.MyFeedbacks(user.ID)
}

// ------------------ Admin ------------------

// Overview merges the admin landing data. Each field is populated by a
// different fetch; total books is derived from the catalog length, matching
// what the statistics page displays.
type Overview struct {
	Books              []Book
	TotalUsers         int
	TotalBooks         int
	TotalBorrowings    int
	CurrentBorrowings  int
	PopularBooks       []PopularBook
	RoleStats          []RoleCount
	SpecialReaderStats []SpecialReaderCount
	CategoryStats      []CategoryCount
}

// AdminOverview loads the admin console's landing data. The three fetches are
// independent, so they run concurrently and the results merge into disjoint
// fields once all have resolved. A fetch that comes back with success=false
// leaves its fields at their zero values.
func (a *App) AdminOverview() (*Overview, error) {
	if _, err := a.requireAdmin(); err != nil {
		return nil, err
	}

	var (
		books         *BooksResponse
		userStats     *UserStatisticsResponse
		borrowingStat *BorrowingStatisticsResponse
	)

	var g errgroup.Group
	g.Go(func() (err error) {
		books, err = a.api.ListBooks()
		return err
	})
	g.Go(func() (err error) {
		userStats, err = a.api.UserStatistics()
		return err
	})
	g.Go(func() (err error) {
		borrowingStat, err = a.api.BorrowingStatistics()
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	overview := &Overview{}
	if books.Success {
		overview.Books = books.Books
		overview.TotalBooks = len(books.Books)
	}
	if userStats.Success {
		overview.TotalUsers = userStats.TotalUsers
		overview.RoleStats = userStats.RoleStats
		overview.SpecialReaderStats = userStats.SpecialReaderStats
	}
	if borrowingStat.Success {
		overview.TotalBorrowings = borrowingStat.TotalBorrowings
		overview.CurrentBorrowings = borrowingStat.CurrentBorrowings
		overview.PopularBooks = borrowingStat.PopularBooks
		overview.CategoryStats = borrowingStat.CategoryStats
	}
	return overview, nil
}

func (a *App) AddBook(book NewBook) (*BookResponse, error) {
	if _, err := a.requireAdmin(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(book.Title) == "" {
		return nil, fmt.Errorf("book title cannot be empty")
	}
	return a.api.AddBook(book)
}

func (a *App) UpdateBook(bookID int64, book NewBook) (*Envelope, error) {
	if _, err := a.requireAdmin(); err != nil {
		return nil, err
	}
	return a.api.UpdateBook(bookID, book)
}

func (a *App) DeleteBook(bookID int64) (*Envelope, error) {
	if _, err := a.requireAdmin(); err != nil {
		return nil, err
	}
	return a.api.DeleteBook(bookID)
}

func (a *App) Users() (*UsersResponse, error) {
	if _, err := a.requireAdmin(); err != nil {
		return nil, err
	}
	return a.api.Users()
}

func (a *App) AdminFeedbacks() (*FeedbacksResponse, error) {
	if _, err := a.requireAdmin(); err != nil {
		return nil, err
	}
	return a.api.Feedbacks()
}

// ReplyFeedback sends the trimmed reply for a pending feedback. Empty text is
// refused locally without a call.
func (a *App) ReplyFeedback(feedbackID int64, reply string) (*Envelope, error) {
	if _, err := a.requireAdmin(); err != nil {
		return nil, err
	}
	trimmed := strings.TrimSpace(reply)
	if trimmed == "" {
		return nil, ErrEmptyReply
	}
	return a.api.ReplyFeedback(feedbackID, trimmed)
}
