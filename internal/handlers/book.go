package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sbilibin2017/booktrack/internal/models"
	"github.com/sbilibin2017/booktrack/internal/responses"
	"github.com/sbilibin2017/booktrack/internal/services"
)

// BookIDParam is the chi URL parameter carrying the book id.
const BookIDParam = "bookID"

// BookCreator creates books.
type BookCreator interface {
	Create(ctx context.Context, userID int64, fields models.BookFields) (*models.BookDB, error)
}

// BookLister lists a page of books with the collection summary.
type BookLister interface {
	List(ctx context.Context, userID int64, filters models.BookFilters) (*services.BookListResult, error)
}

// BookGetter loads one owned book.
type BookGetter interface {
	Get(ctx context.Context, userID, bookID int64) (*models.BookDB, error)
}

// BookUpdater overwrites one owned book.
type BookUpdater interface {
	Update(ctx context.Context, userID, bookID int64, fields models.BookFields) (*models.BookDB, error)
}

// BookDeleter removes one owned book.
type BookDeleter interface {
	Delete(ctx context.Context, userID, bookID int64) error
}

// BookRequest represents the JSON body for creating or updating a book.
// Empty strings and zero numbers in optional fields mean "not set".
// swagger:model BookRequest
type BookRequest struct {
	// required: true
	// default: The Hobbit
	Title string `json:"title" validate:"required,max=255"`

	// required: true
	// default: J.R.R. Tolkien
	Author string `json:"author" validate:"required,max=255"`

	// default: Fantasy
	Genre *string `json:"genre" validate:"omitempty,max=100"`

	// default: 1937
	PublicationYear *int `json:"publicationYear" validate:"omitempty,min=1000,maxyear"`

	// required: true
	// default: want_to_read
	ReadingStatus string `json:"readingStatus" validate:"required,readingstatus"`

	// default: 5
	Rating *int `json:"rating" validate:"omitempty,min=1,max=5"`

	// default: A classic
	Notes *string `json:"notes" validate:"omitempty,max=2000"`
}

func (req *BookRequest) normalize() {
	req.Title = strings.TrimSpace(req.Title)
	req.Author = strings.TrimSpace(req.Author)
	req.ReadingStatus = strings.TrimSpace(req.ReadingStatus)
	req.Genre = trimmedOrNil(req.Genre)
	req.Notes = trimmedOrNil(req.Notes)
	req.PublicationYear = nonZeroOrNil(req.PublicationYear)
	req.Rating = nonZeroOrNil(req.Rating)
}

func (req *BookRequest) fields() models.BookFields {
	return models.BookFields{
		Title:           req.Title,
		Author:          req.Author,
		Genre:           req.Genre,
		PublicationYear: req.PublicationYear,
		ReadingStatus:   req.ReadingStatus,
		Rating:          req.Rating,
		Notes:           req.Notes,
	}
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func nonZeroOrNil(i *int) *int {
	if i == nil || *i == 0 {
		return nil
	}
	return i
}

// bindBook decodes, normalizes and validates a BookRequest.
func bindBook(w http.ResponseWriter, r *http.Request) (models.BookFields, bool) {
	var req BookRequest
	if !decodeBody(w, r, &req) {
		return models.BookFields{}, false
	}
	req.normalize()
	if !validateBody(w, &req) {
		return models.BookFields{}, false
	}
	return req.fields(), true
}

// bookIDFromRequest parses the book id URL parameter. On failure it writes
// INVALID_ID and returns false.
func bookIDFromRequest(w http.ResponseWriter, r *http.Request) (int64, bool) {
	bookID, err := strconv.ParseInt(chi.URLParam(r, BookIDParam), 10, 64)
	if err != nil {
		responses.Error(w, http.StatusBadRequest, responses.CodeInvalidID, "Book ID must be a valid number")
		return 0, false
	}
	return bookID, true
}

// NewCreateBookHandler returns an HTTP handler that adds a book to the caller's collection.
// @Summary Add a book
// @Tags books
// @Accept json
// @Produce json
// @Param bookRequest body handlers.BookRequest true "Book"
// @Success 201 {object} responses.Envelope{data=models.BookDB} "Book added"
// @Failure 400 {object} responses.Envelope "Invalid input data"
// @Failure 401 {object} responses.Envelope "Unauthorized"
// @Router /books [post]
// @Security BearerAuth
func NewCreateBookHandler(svc BookCreator, userIDGetter func(ctx context.Context) (int64, bool)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDGetter(r.Context())
		if !ok {
			writeUnauthorized(w)
			return
		}

		fields, ok := bindBook(w, r)
		if !ok {
			return
		}

		book, err := svc.Create(r.Context(), userID, fields)
		if err != nil {
			writeBookError(w, r, err, "create")
			return
		}

		responses.Success(w, http.StatusCreated, "Book added successfully", book)
	}
}

// NewListBooksHandler returns an HTTP handler that lists the caller's books.
// Malformed query parameters never fail the request; they fall back to defaults.
// @Summary List books
// @Tags books
// @Produce json
// @Param status query string false "Reading status"
// @Param search query string false "Case-insensitive match on title or author"
// @Param sortBy query string false "title, author, created_at, publication_year or rating"
// @Param sortOrder query string false "ASC or DESC"
// @Param page query int false "Page number"
// @Param limit query int false "Page size, 1 to 100"
// @Success 200 {object} responses.Envelope{data=services.BookListResult} "Books"
// @Failure 401 {object} responses.Envelope "Unauthorized"
// @Router /books [get]
// @Security BearerAuth
func NewListBooksHandler(svc BookLister, userIDGetter func(ctx context.Context) (int64, bool)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDGetter(r.Context())
		if !ok {
			writeUnauthorized(w)
			return
		}

		q := r.URL.Query()
		filters := models.BookFilters{
			Status:    q.Get("status"),
			Search:    q.Get("search"),
			SortBy:    q.Get("sortBy"),
			SortOrder: q.Get("sortOrder"),
			Page:      q.Get("page"),
			Limit:     q.Get("limit"),
		}

		result, err := svc.List(r.Context(), userID, filters)
		if err != nil {
			writeBookError(w, r, err, "list")
			return
		}

		responses.Success(w, http.StatusOK, "", result)
	}
}

// NewGetBookHandler returns an HTTP handler that fetches one of the caller's books.
// @Summary Get a book
// @Tags books
// @Produce json
// @Param bookID path int true "Book ID"
// @Success 200 {object} responses.Envelope{data=models.BookDB} "Book"
// @Failure 400 {object} responses.Envelope "Invalid id"
// @Failure 403 {object} responses.Envelope "Not the owner"
// @Failure 404 {object} responses.Envelope "Book not found"
// @Router /books/{bookID} [get]
// @Security BearerAuth
func NewGetBookHandler(svc BookGetter, userIDGetter func(ctx context.Context) (int64, bool)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDGetter(r.Context())
		if !ok {
			writeUnauthorized(w)
			return
		}

		bookID, ok := bookIDFromRequest(w, r)
		if !ok {
			return
		}

		book, err := svc.Get(r.Context(), userID, bookID)
		if err != nil {
			writeBookError(w, r, err, "access")
			return
		}

		responses.Success(w, http.StatusOK, "", book)
	}
}

// NewUpdateBookHandler returns an HTTP handler that overwrites one of the caller's books.
// @Summary Update a book
// @Tags books
// @Accept json
// @Produce json
// @Param bookID path int true "Book ID"
// @Param bookRequest body handlers.BookRequest true "Book"
// @Success 200 {object} responses.Envelope{data=models.BookDB} "Book updated"
// @Failure 400 {object} responses.Envelope "Invalid input data or id"
// @Failure 403 {object} responses.Envelope "Not the owner"
// @Failure 404 {object} responses.Envelope "Book not found"
// @Router /books/{bookID} [put]
// @Security BearerAuth
func NewUpdateBookHandler(svc BookUpdater, userIDGetter func(ctx context.Context) (int64, bool)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDGetter(r.Context())
		if !ok {
			writeUnauthorized(w)
			return
		}

		bookID, ok := bookIDFromRequest(w, r)
		if !ok {
			return
		}

		fields, ok := bindBook(w, r)
		if !ok {
			return
		}

		book, err := svc.Update(r.Context(), userID, bookID, fields)
		if err != nil {
			writeBookError(w, r, err, "update")
			return
		}

		responses.Success(w, http.StatusOK, "Book updated successfully", book)
	}
}

// NewDeleteBookHandler returns an HTTP handler that removes one of the caller's books.
// @Summary Delete a book
// @Tags books
// @Produce json
// @Param bookID path int true "Book ID"
// @Success 200 {object} responses.Envelope "Book deleted"
// @Failure 400 {object} responses.Envelope "Invalid id"
// @Failure 403 {object} responses.Envelope "Not the owner"
// @Failure 404 {object} responses.Envelope "Book not found"
// @Router /books/{bookID} [delete]
// @Security BearerAuth
func NewDeleteBookHandler(svc BookDeleter, userIDGetter func(ctx context.Context) (int64, bool)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDGetter(r.Context())
		if !ok {
			writeUnauthorized(w)
			return
		}

		bookID, ok := bookIDFromRequest(w, r)
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), userID, bookID); err != nil {
			writeBookError(w, r, err, "delete")
			return
		}

		responses.Success(w, http.StatusOK, "Book deleted successfully", nil)
	}
}
