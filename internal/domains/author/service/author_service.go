package service

import (
	"context"
	"errors"
	"time"

	"bookmanager/internal/domains/author"
	"bookmanager/internal/shared"
	"bookmanager/pkg/database"
	"bookmanager/pkg/logger"
)

type authorService struct {
	repo author.Repository
	tx   database.Transactor
}

func NewAuthorService(repo author.Repository, tx database.Transactor) author.Service {
	return &authorService{
		repo: repo,
		tx:   tx,
	}
}

func (s *authorService) Create(ctx context.Context, name string, birthdate time.Time) (author.Author, error) {
	created, err := s.repo.Insert(ctx, name, birthdate)
	if err != nil {
		return author.Author{}, err
	}

	logger.Info("author created", map[string]interface{}{"author_id": created.ID})
	return created, nil
}

func (s *authorService) Update(ctx context.Context, id int64, name string, birthdate time.Time) (author.Author, error) {
	var updated author.Author

	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		// Step 1: the author must exist
		if _, err := s.repo.FindByID(ctx, id); err != nil {
			return notFound(id, err)
		}

		// Step 2: full replace
		a, err := s.repo.Update(ctx, id, name, birthdate)
		if err != nil {
			return notFound(id, err)
		}
		updated = a
		return nil
	})
	if err != nil {
		return author.Author{}, err
	}

	logger.Info("author updated", map[string]interface{}{"author_id": id})
	return updated, nil
}

// notFound converts the repository's absence sentinel; other errors pass through.
func notFound(id int64, err error) error {
	if errors.Is(err, author.ErrAuthorNotFound) {
		return shared.NotFound("id", author.EntityName, id)
	}
	return err
}
