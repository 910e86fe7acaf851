package repositories

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/sbilibin2017/booktrack/internal/models"
)

const (
	dialectPostgres = "postgres"
	tableBooks      = "books"

	colBookID          = "book_id"
	colUserID          = "user_id"
	colTitle           = "title"
	colAuthor          = "author"
	colGenre           = "genre"
	colPublicationYear = "publication_year"
	colReadingStatus   = "reading_status"
	colRating          = "rating"
	colNotes           = "notes"
	colCreatedAt       = "created_at"
	colUpdatedAt       = "updated_at"

	aliasTotal = "total"
)

// Pagination bounds.
const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// DefaultSortColumn is used whenever sortBy is missing or not allowed.
const DefaultSortColumn = colCreatedAt

var bookColumns = []any{
	colBookID, colUserID, colTitle, colAuthor, colGenre, colPublicationYear,
	colReadingStatus, colRating, colNotes, colCreatedAt, colUpdatedAt,
}

// sortableColumns is the only set of identifiers that may reach ORDER BY.
var sortableColumns = map[string]struct{}{
	colTitle:           {},
	colAuthor:          {},
	colCreatedAt:       {},
	colPublicationYear: {},
	colRating:          {},
}

// ListQuery is a sanitized list request. Every field is safe to use.
type ListQuery struct {
	Status     string
	Search     string
	SortColumn string
	SortDesc   bool
	Page       int
	Limit      int
	Offset     int
}

// Statement is an executable query text with its positional arguments.
type Statement struct {
	SQL  string
	Args []any
}

// NormalizeFilters turns raw filters into a ListQuery. It never fails:
// unknown sort columns fall back to created_at, any order other than ASC
// means DESC, limit is clamped into [1, MaxLimit] (20 when not a number)
// and page is at least 1 (1 when not a number). Numbers too large for an
// int saturate, and page is capped so the offset always fits in an int.
//
// Status and search are passed through as sent. An unknown status matches no rows.
func NormalizeFilters(f models.BookFilters) ListQuery {
	q := ListQuery{
		Status:     f.Status,
		Search:     f.Search,
		SortColumn: DefaultSortColumn,
		SortDesc:   !strings.EqualFold(strings.TrimSpace(f.SortOrder), "ASC"),
		Page:       DefaultPage,
		Limit:      DefaultLimit,
	}

	if _, ok := sortableColumns[f.SortBy]; ok {
		q.SortColumn = f.SortBy
	}

	if limit, ok := parseNumber(f.Limit); ok {
		q.Limit = min(max(limit, 1), MaxLimit)
	}

	if page, ok := parseNumber(f.Page); ok && page > 1 {
		q.Page = min(page, math.MaxInt/q.Limit)
	}

	q.Offset = (q.Page - 1) * q.Limit
	return q
}

// parseNumber parses a decimal query value. Out of range values come back
// saturated to math.MaxInt or math.MinInt, as strconv reports them.
func parseNumber(raw string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return n, true
}

// BuildListQueries returns the row query and the count query for a user's
// books. Both share the same WHERE clause and arguments; the count query's
// arguments are always a prefix of the row query's arguments.
func BuildListQueries(userID int64, q ListQuery) (rows Statement, count Statement, err error) {
	base := filteredBooks(userID, q)

	order := []exp.OrderedExpression{goqu.I(q.SortColumn).Desc(), goqu.I(colBookID).Desc()}
	if !q.SortDesc {
		order = []exp.OrderedExpression{goqu.I(q.SortColumn).Asc(), goqu.I(colBookID).Asc()}
	}

	rowsDS := base.
		Select(bookColumns...).
		Order(order...).
		Limit(uint(q.Limit)).
		Offset(uint(q.Offset))

	countDS := base.Select(goqu.COUNT(goqu.Star()).As(aliasTotal))

	if rows.SQL, rows.Args, err = rowsDS.ToSQL(); err != nil {
		return Statement{}, Statement{}, err
	}
	if count.SQL, count.Args, err = countDS.ToSQL(); err != nil {
		return Statement{}, Statement{}, err
	}
	return rows, count, nil
}

// filteredBooks builds the shared FROM/WHERE part. user_id is always the
// first predicate and the first bound argument.
func filteredBooks(userID int64, q ListQuery) *goqu.SelectDataset {
	conditions := []exp.Expression{goqu.C(colUserID).Eq(userID)}

	if q.Status != "" {
		conditions = append(conditions, goqu.C(colReadingStatus).Eq(q.Status))
	}

	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		conditions = append(conditions, goqu.Or(
			goqu.C(colTitle).ILike(pattern),
			goqu.C(colAuthor).ILike(pattern),
		))
	}

	return goqu.Dialect(dialectPostgres).
		From(tableBooks).
		Prepared(true).
		Where(conditions...)
}

// NewPagination computes page metadata. TotalPages is 0 when there are no books.
func NewPagination(page, limit, total int) models.Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return models.Pagination{
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalBooks:   total,
		BooksPerPage: limit,
	}
}
