package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/Prem324/bookshelf/internal/model"
)

var _ model.BookStore = (*BookRepository)(nil)

type BookRepository struct {
	db *Connection
}

func NewBookRepository(db *Connection) *BookRepository {
	return &BookRepository{db: db}
}

const bookColumns = `id, title, author, year, isbn, description, image_url, owner_id, created_at, updated_at`

func scanBook(row pgx.Row) (model.Book, error) {
	var b model.Book
	err := row.Scan(
		&b.ID, &b.Title, &b.Author, &b.Year, &b.ISBN, &b.Description,
		&b.ImageURL, &b.OwnerID, &b.CreatedAt, &b.UpdatedAt,
	)
	return b, err
}

func (r *BookRepository) Create(ctx context.Context, book model.Book) (model.Book, error) {
	query := `INSERT INTO books (title, author, year, isbn, description, owner_id)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING ` + bookColumns

	saved, err := scanBook(r.db.QueryRow(ctx, query,
		book.Title, book.Author, book.Year, book.ISBN, book.Description, book.OwnerID,
	))
	if err != nil {
		return model.Book{}, fmt.Errorf("failed to create book: %w", err)
	}
	return saved, nil
}

// scope restricts a WHERE clause to rows the caller may touch. Admins see
// everything; everyone else only their own rows.
func scope(caller model.Identity, args []any, clauses []string) ([]any, []string) {
	if caller.Admin() {
		return args, clauses
	}
	args = append(args, caller.UserID)
	return args, append(clauses, fmt.Sprintf("owner_id = $%d", len(args)))
}

func (r *BookRepository) GetByID(ctx context.Context, caller model.Identity, id int64) (model.Book, error) {
	args := []any{id}
	clauses := []string{"id = $1"}
	args, clauses = scope(caller, args, clauses)

	query := `SELECT ` + bookColumns + ` FROM books WHERE ` + strings.Join(clauses, " AND ")

	book, err := scanBook(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Book{}, model.ErrNotFound
		}
		return model.Book{}, fmt.Errorf("failed to get book by id: %w", err)
	}
	return book, nil
}

func (r *BookRepository) Update(ctx context.Context, caller model.Identity, book model.Book) (model.Book, error) {
	args := []any{book.ID, book.Title, book.Author, book.Year, book.ISBN, book.Description}
	clauses := []string{"id = $1"}
	args, clauses = scope(caller, args, clauses)

	query := `UPDATE books SET title = $2, author = $3, year = $4, isbn = $5, description = $6, updated_at = NOW()
			  WHERE ` + strings.Join(clauses, " AND ") + `
			  RETURNING ` + bookColumns

	updated, err := scanBook(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Book{}, model.ErrNotFound
		}
		return model.Book{}, fmt.Errorf("failed to update book: %w", err)
	}
	return updated, nil
}

func (r *BookRepository) SetImageURL(ctx context.Context, caller model.Identity, id int64, imageURL string) (model.Book, error) {
	args := []any{id, imageURL}
	clauses := []string{"id = $1"}
	args, clauses = scope(caller, args, clauses)

	query := `UPDATE books SET image_url = $2, updated_at = NOW()
			  WHERE ` + strings.Join(clauses, " AND ") + `
			  RETURNING ` + bookColumns

	updated, err := scanBook(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Book{}, model.ErrNotFound
		}
		return model.Book{}, fmt.Errorf("failed to set book image: %w", err)
	}
	return updated, nil
}

func (r *BookRepository) Delete(ctx context.Context, caller model.Identity, id int64) error {
	args := []any{id}
	clauses := []string{"id = $1"}
	args, clauses = scope(caller, args, clauses)

	query := `DELETE FROM books WHERE ` + strings.Join(clauses, " AND ")

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *BookRepository) List(ctx context.Context, caller model.Identity, query model.BookQuery) ([]model.Book, int, error) {
	query = query.Normalize()

	var args []any
	var clauses []string
	args, clauses = scope(caller, args, clauses)

	if query.Title != "" {
		args = append(args, "%"+query.Title+"%")
		clauses = append(clauses, fmt.Sprintf("title ILIKE $%d", len(args)))
	}
	if query.Author != "" {
		args = append(args, "%"+query.Author+"%")
		clauses = append(clauses, fmt.Sprintf("author ILIKE $%d", len(args)))
	}
	if query.Year != nil {
		args = append(args, *query.Year)
		clauses = append(clauses, fmt.Sprintf("year = $%d", len(args)))
	}
	if query.ISBN != "" {
		args = append(args, "%"+query.ISBN+"%")
		clauses = append(clauses, fmt.Sprintf("isbn ILIKE $%d", len(args)))
	}

	where := ""
	if len(clauses) > 0 {
		where = " WHERE " + strings.Join(clauses, " AND ")
	}

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM books"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count books: %w", err)
	}

	var order string
	switch query.Sort {
	case model.SortOldest:
		order = "id ASC"
	case model.SortAZ:
		order = "title ASC"
	default:
		order = "id DESC"
	}

	args = append(args, query.PageSize, (query.Page-1)*query.PageSize)
	sel := fmt.Sprintf("SELECT %s FROM books%s ORDER BY %s LIMIT $%d OFFSET $%d",
		bookColumns, where, order, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, sel, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	books := make([]model.Book, 0)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read books: %w", err)
	}

	return books, total, nil
}
