package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"bookmanager/internal/domains/author"
	"bookmanager/pkg/cache"
	"bookmanager/pkg/database"
)

type postgresRepository struct {
	db       database.DB
	cache    cache.Cache
	cacheTTL time.Duration
}

// NewPostgresRepository receives the pool and cache from the container.
// Queries run on the transaction carried by ctx when there is one.
func NewPostgresRepository(db database.DB, c cache.Cache, cacheTTL time.Duration) author.Repository {
	return &postgresRepository{
		db:       db,
		cache:    c,
		cacheTTL: cacheTTL,
	}
}

const authorCacheKeyPrefix = "author:"

func cacheKey(id int64) string {
	return authorCacheKeyPrefix + strconv.FormatInt(id, 10)
}

// ════════════════════════════════════════════════════════════════
// READ
// ════════════════════════════════════════════════════════════════

func (r *postgresRepository) FindByID(ctx context.Context, id int64) (author.Author, error) {
	key := cacheKey(id)

	var a author.Author
	if hit, err := r.cache.Get(ctx, key, &a); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("author cache read failed")
	} else if hit {
		return a, nil
	}

	query := `
        SELECT id, name, birthdate
        FROM authors
        WHERE id = $1
    `

	err := database.Conn(ctx, r.db).QueryRow(ctx, query, id).Scan(&a.ID, &a.Name, &a.Birthdate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return author.Author{}, author.ErrAuthorNotFound
		}
		return author.Author{}, fmt.Errorf("failed to get author by id: %w", err)
	}

	if err := r.cache.Set(ctx, key, a, r.cacheTTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("author cache write failed")
	}

	return a, nil
}

// FindExistingIDs always hits the database: it backs reference checks
// that must not trust a possibly stale cache.
func (r *postgresRepository) FindExistingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return []int64{}, nil
	}

	query := `SELECT id FROM authors WHERE id = ANY($1)`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query existing authors: %w", err)
	}

	existing, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("failed to scan existing authors: %w", err)
	}

	return existing, nil
}

// ════════════════════════════════════════════════════════════════
// WRITE
// ════════════════════════════════════════════════════════════════

func (r *postgresRepository) Insert(ctx context.Context, name string, birthdate time.Time) (author.Author, error) {
	query := `
        INSERT INTO authors (name, birthdate)
        VALUES ($1, $2)
        RETURNING id, name, birthdate
    `

	var a author.Author
	err := database.Conn(ctx, r.db).QueryRow(ctx, query, name, birthdate).Scan(&a.ID, &a.Name, &a.Birthdate)
	if err != nil {
		return author.Author{}, fmt.Errorf("failed to insert author: %w", err)
	}

	return a, nil
}

func (r *postgresRepository) Update(ctx context.Context, id int64, name string, birthdate time.Time) (author.Author, error) {
	query := `
        UPDATE authors
        SET name = $2, birthdate = $3, updated_at = NOW()
        WHERE id = $1
        RETURNING id, name, birthdate
    `

	var a author.Author
	err := database.Conn(ctx, r.db).QueryRow(ctx, query, id, name, birthdate).Scan(&a.ID, &a.Name, &a.Birthdate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return author.Author{}, author.ErrAuthorNotFound
		}
		return author.Author{}, fmt.Errorf("failed to update author: %w", err)
	}

	// a read between delete and commit would re-cache the old row
	database.AfterCommit(ctx, func(ctx context.Context) {
		r.invalidate(ctx, id)
	})

	return a, nil
}

func (r *postgresRepository) invalidate(ctx context.Context, id int64) {
	if err := r.cache.Delete(ctx, cacheKey(id)); err != nil {
		log.Warn().Err(err).Int64("author_id", id).Msg("author cache invalidation failed")
	}
}
