package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"bookmanager/internal/domains/book/model"
	"bookmanager/pkg/database"
)

const pgForeignKeyViolation = "23503"

type postgresRepository struct {
	db database.DB
	tx database.Transactor
}

func NewPostgresRepository(db database.DB) RepositoryInterface {
	return &postgresRepository{
		db: db,
		tx: database.NewTransactor(db),
	}
}

// ════════════════════════════════════════════════════════════════
// READ
// ════════════════════════════════════════════════════════════════

const (
	selectBookQuery = `
        SELECT id, title, price, published_status
        FROM books
        WHERE id = $1
    `

	selectBookForUpdateQuery = selectBookQuery + ` FOR UPDATE`

	selectAuthorIDsQuery = `
        SELECT author_id
        FROM book_authors
        WHERE book_id = $1
        ORDER BY sort_order
    `
)

func (r *postgresRepository) FindByID(ctx context.Context, id int64) (model.Book, error) {
	return r.findByID(ctx, selectBookQuery, id)
}

func (r *postgresRepository) FindByIDForUpdate(ctx context.Context, id int64) (model.Book, error) {
	return r.findByID(ctx, selectBookForUpdateQuery, id)
}

// findByID reads the row and its associations as two statements on the same connection.
// Locking rules out GROUP BY, so the author ids are not aggregated here.
func (r *postgresRepository) findByID(ctx context.Context, query string, id int64) (model.Book, error) {
	q := database.Conn(ctx, r.db)

	var (
		b      model.Book
		status string
	)
	err := q.QueryRow(ctx, query, id).Scan(&b.ID, &b.Title, &b.Price, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Book{}, model.ErrBookNotFound
		}
		return model.Book{}, fmt.Errorf("failed to get book by id: %w", err)
	}
	b.PublishedStatus = model.PublishedStatus(status)

	rows, err := q.Query(ctx, selectAuthorIDsQuery, id)
	if err != nil {
		return model.Book{}, fmt.Errorf("failed to get book authors: %w", err)
	}
	b.AuthorIDs, err = pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return model.Book{}, fmt.Errorf("failed to scan book authors: %w", err)
	}

	return b, nil
}

func (r *postgresRepository) FindBooksByAuthorID(ctx context.Context, authorID int64) ([]model.Book, error) {
	// mine picks the author's books, ba joins all of their authors back in
	query := `
        SELECT b.id, b.title, b.price, b.published_status,
               array_agg(ba.author_id ORDER BY ba.sort_order) AS author_ids
        FROM books b
        JOIN book_authors mine ON mine.book_id = b.id AND mine.author_id = $1
        JOIN book_authors ba   ON ba.book_id = b.id
        GROUP BY b.id
        ORDER BY b.id
    `

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to query books by author: %w", err)
	}

	books, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Book, error) {
		var (
			b      model.Book
			status string
		)
		if err := row.Scan(&b.ID, &b.Title, &b.Price, &status, &b.AuthorIDs); err != nil {
			return model.Book{}, err
		}
		b.PublishedStatus = model.PublishedStatus(status)
		return b, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan books by author: %w", err)
	}

	return books, nil
}

// ════════════════════════════════════════════════════════════════
// WRITE
// ════════════════════════════════════════════════════════════════

const (
	insertBookQuery = `
        INSERT INTO books (title, price, published_status)
        VALUES ($1, $2, $3)
        RETURNING id
    `

	updateBookQuery = `
        UPDATE books
        SET title = $2, price = $3, published_status = $4, updated_at = NOW()
        WHERE id = $1
    `

	deleteBookAuthorsQuery = `DELETE FROM book_authors WHERE book_id = $1`

	// sort_order is the 1-based index in the request, so reads can replay the order.
	insertBookAuthorsQuery = `
        INSERT INTO book_authors (book_id, author_id, sort_order)
        SELECT $1, a.author_id, a.ord
        FROM unnest($2::bigint[]) WITH ORDINALITY AS a(author_id, ord)
    `
)

func (r *postgresRepository) Insert(ctx context.Context, in model.BookInput) (model.Book, error) {
	var id int64

	err := r.tx.WithTx(ctx, func(ctx context.Context) error {
		q := database.Conn(ctx, r.db)

		err := q.QueryRow(ctx, insertBookQuery, in.Title, in.Price, string(in.PublishedStatus)).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to insert book: %w", err)
		}

		return insertAuthors(ctx, q, id, in.AuthorIDs)
	})
	if err != nil {
		return model.Book{}, err
	}

	return snapshot(id, in), nil
}

// Update replaces the association set wholesale: delete everything, reinsert the request.
func (r *postgresRepository) Update(ctx context.Context, id int64, in model.BookInput) (model.Book, error) {
	err := r.tx.WithTx(ctx, func(ctx context.Context) error {
		q := database.Conn(ctx, r.db)

		tag, err := q.Exec(ctx, updateBookQuery, id, in.Title, in.Price, string(in.PublishedStatus))
		if err != nil {
			return fmt.Errorf("failed to update book: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return model.ErrBookNotFound
		}

		if _, err := q.Exec(ctx, deleteBookAuthorsQuery, id); err != nil {
			return fmt.Errorf("failed to delete book authors: %w", err)
		}

		return insertAuthors(ctx, q, id, in.AuthorIDs)
	})
	if err != nil {
		return model.Book{}, err
	}

	return snapshot(id, in), nil
}

func insertAuthors(ctx context.Context, q database.Querier, bookID int64, authorIDs []int64) error {
	_, err := q.Exec(ctx, insertBookAuthorsQuery, bookID, authorIDs)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return model.AuthorsVanished()
		}
		return fmt.Errorf("failed to insert book authors: %w", err)
	}
	return nil
}

// snapshot is the post-write state. The author slice is copied.
func snapshot(id int64, in model.BookInput) model.Book {
	return model.Book{
		ID:              id,
		Title:           in.Title,
		Price:           in.Price,
		PublishedStatus: in.PublishedStatus,
		AuthorIDs:       append([]int64(nil), in.AuthorIDs...),
	}
}
