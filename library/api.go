package library

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// APIClient wraps the e-librarian REST API, one method per endpoint. It
// performs no retries and no interpretation of business outcomes: any
// response with a decodable body is returned as-is, success flag and server
// message included. Only transport failures and bodies that fail to decode
// come back as errors.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIClient builds a client for the API rooted at baseURL
// (e.g. "http://localhost:5000/api").
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// do issues one round trip and decodes the response body into out.
// Every call carries a fresh X-Request-Id so server logs can be correlated.
func (c *APIClient) do(method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewBuffer(encoded)
	}

	request, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("X-Request-Id", uuid.NewString())

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer response.Body.Close()

	data, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read response: %w", method, path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s %s: status %d: decode response: %w", method, path, response.StatusCode, err)
	}
	return nil
}

// ------------------ Auth ------------------

func (c *APIClient) Login(username, password string) (*LoginResponse, error) {
	var out LoginResponse
	err := c.do(http.MethodPost, "/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) Register(username, password, email, phone string) (*RegisterResponse, error) {
	payload := map[string]string{
		"username": username,
		"password": password,
	}
	if email != "" {
		payload["email"] = email
	}
	if phone != "" {
		payload["phone"] = phone
	}
	var out RegisterResponse
	if err := c.do(http.MethodPost, "/auth/register", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) ResetPassword(username, phone, newPassword string) (*Envelope, error) {
	var out Envelope
	err := c.do(http.MethodPost, "/auth/reset-password", map[string]string{
		"username":     username,
		"phone":        phone,
		"new_password": newPassword,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ProfileUpdate carries the editable profile fields. A nil SpecialReaderType
// clears the special-reader classification server-side.
type ProfileUpdate struct {
	Email             string  `json:"email"`
	Phone             string  `json:"phone"`
	SpecialReaderType *string `json:"special_reader_type"`
}

func (c *APIClient) UpdateProfile(userID int64, update ProfileUpdate) (*Envelope, error) {
	payload := struct {
		UserID int64 `json:"user_id"`
		ProfileUpdate
	}{UserID: userID, ProfileUpdate: update}

	var out Envelope
	if err := c.do(http.MethodPut, "/auth/update-profile", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ------------------ Catalog ------------------

func (c *APIClient) ListBooks() (*BooksResponse, error) {
	var out BooksResponse
	if err := c.do(http.MethodGet, "/books/list", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) SearchBooks(query string) (*BooksResponse, error) {
	var out BooksResponse
	path := "/books/search?query=" + url.QueryEscape(query)
	if err := c.do(http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) BookDetail(bookID int64) (*BookResponse, error) {
	var out BookResponse
	if err := c.do(http.MethodGet, fmt.Sprintf("/books/detail/%d", bookID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) Categories() (*CategoriesResponse, error) {
	var out CategoriesResponse
	if err := c.do(http.MethodGet, "/books/categories", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ------------------ Borrowing ------------------

func (c *APIClient) Borrow(userID, bookID int64) (*BorrowResponse, error) {
	var out BorrowResponse
	err := c.do(http.MethodPost, "/books/borrow", map[string]int64{
		"user_id": userID,
		"book_id": bookID,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) Return(recordID int64) (*Envelope, error) {
	var out Envelope
	err := c.do(http.MethodPost, "/books/return", map[string]int64{"record_id": recordID}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) Renew(recordID int64) (*RenewResponse, error) {
	var out RenewResponse
	err := c.do(http.MethodPost, "/books/renew", map[string]int64{"record_id": recordID}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) MyBorrowings(userID int64) (*BorrowingsResponse, error) {
	var out BorrowingsResponse
	if err := c.do(http.MethodGet, fmt.Sprintf("/books/my-borrowings/%d", userID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) Rate(recordID int64, rating int) (*Envelope, error) {
	payload := struct {
		RecordID int64 `json:"record_id"`
		Rating   int   `json:"rating"`
	}{recordID, rating}

	var out Envelope
	if err := c.do(http.MethodPost, "/books/rate", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ------------------ Feedback ------------------

func (c *APIClient) SubmitFeedback(userID int64, feedbackType, content string) (*SubmitFeedbackResponse, error) {
	payload := struct {
		UserID  int64  `json:"user_id"`
		Type    string `json:"type"`
		Content string `json:"content"`
	}{userID, feedbackType, content}

	var out SubmitFeedbackResponse
	if err := c.do(http.MethodPost, "/books/feedback/submit", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) MyFeedbacks(userID int64) (*FeedbacksResponse, error) {
	var out FeedbacksResponse
	if err := c.do(http.MethodGet, fmt.Sprintf("/books/feedback/my/%d", userID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ------------------ Admin ------------------

func (c *APIClient) AddBook(book NewBook) (*BookResponse, error) {
	var out BookResponse
	if err := c.do(http.MethodPost, "/admin/books/add", book, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) UpdateBook(bookID int64, book NewBook) (*Envelope, error) {
	var out Envelope
	if err := c.do(http.MethodPut, fmt.Sprintf("/admin/books/update/%d", bookID), book, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) DeleteBook(bookID int64) (*Envelope, error) {
	var out Envelope
	if err := c.do(http.MethodDelete, fmt.Sprintf("/admin/books/delete/%d", bookID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) Users() (*UsersResponse, error) {
	var out UsersResponse
	if err := c.do(http.MethodGet, "/admin/users/list", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) UserStatistics() (*UserStatisticsResponse, error) {
	var out UserStatisticsResponse
	if err := c.do(http.MethodGet, "/admin/users/statistics", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) BorrowingStatistics() (*BorrowingStatisticsResponse, error) {
	var out BorrowingStatisticsResponse
	if err := c.do(http.MethodGet, "/admin/borrowings/statistics", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) Feedbacks() (*FeedbacksResponse, error) {
	var out FeedbacksResponse
	if err := c.do(http.MethodGet, "/admin/feedback/list", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) ReplyFeedback(feedbackID int64, reply string) (*Envelope, error) {
	var out Envelope
	err := c.do(http.MethodPut, fmt.Sprintf("/admin/feedback/reply/%d", feedbackID),
		map[string]string{"admin_reply": reply}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
