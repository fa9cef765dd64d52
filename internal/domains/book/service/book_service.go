package service

import (
	"context"
	"errors"

	"bookmanager/internal/domains/book/model"
	"bookmanager/internal/domains/book/repository"
	"bookmanager/pkg/database"
	"bookmanager/pkg/logger"
)

type BookService struct {
	repo    repository.RepositoryInterface
	authors AuthorStore
	tx      database.Transactor
}

func NewService(repo repository.RepositoryInterface, authors AuthorStore, tx database.Transactor) ServiceInterface {
	return &BookService{
		repo:    repo,
		authors: authors,
		tx:      tx,
	}
}

// ════════════════════════════════════════════════════════════════
// CREATE
// ════════════════════════════════════════════════════════════════

func (s *BookService) CreateBook(ctx context.Context, in model.BookInput) (model.Book, error) {
	in.AuthorIDs = model.NormalizeAuthorIDs(in.AuthorIDs)
	if len(in.AuthorIDs) == 0 {
		return model.Book{}, model.NoAuthors()
	}

	var created model.Book
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		// Step 1: every referenced author must exist
		if err := s.ensureAuthorsExist(ctx, in.AuthorIDs); err != nil {
			return err
		}

		// Step 2: row + associations
		b, err := s.repo.Insert(ctx, in)
		if err != nil {
			return err
		}
		created = b
		return nil
	})
	if err != nil {
		return model.Book{}, err
	}

	logger.Info("book created", map[string]interface{}{
		"book_id":    created.ID,
		"author_ids": created.AuthorIDs,
	})
	return created, nil
}

// ════════════════════════════════════════════════════════════════
// UPDATE
// ════════════════════════════════════════════════════════════════

func (s *BookService) UpdateBook(ctx context.Context, id int64, in model.BookInput) (model.Book, error) {
	in.AuthorIDs = model.NormalizeAuthorIDs(in.AuthorIDs)
	if len(in.AuthorIDs) == 0 {
		return model.Book{}, model.NoAuthors()
	}

	var updated model.Book
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		// Step 1: load current state (row locked until commit)
		current, err := s.repo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return bookNotFound(id, err)
		}

		// Step 2: status can only move forward
		if !current.PublishedStatus.CanTransitionTo(in.PublishedStatus) {
			return model.UnpublishForbidden()
		}

		// Step 3: re-check authors only when the set actually changes
		if !model.SameAuthorSet(current.AuthorIDs, in.AuthorIDs) {
			if err := s.ensureAuthorsExist(ctx, in.AuthorIDs); err != nil {
				return err
			}
		}

		// Step 4: overwrite row, replace associations
		b, err := s.repo.Update(ctx, id, in)
		if err != nil {
			return bookNotFound(id, err)
		}
		updated = b
		return nil
	})
	if err != nil {
		return model.Book{}, err
	}

	logger.Info("book updated", map[string]interface{}{
		"book_id":          id,
		"published_status": updated.PublishedStatus,
	})
	return updated, nil
}

// ════════════════════════════════════════════════════════════════
// LIST
// ════════════════════════════════════════════════════════════════

func (s *BookService) ListByAuthor(ctx context.Context, authorID int64) ([]model.Book, error) {
	books, err := s.repo.FindBooksByAuthorID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []model.Book{}
	}
	return books, nil
}

// ensureAuthorsExist fails with the missing ids, in request order.
func (s *BookService) ensureAuthorsExist(ctx context.Context, authorIDs []int64) error {
	existing, err := s.authors.FindExistingIDs(ctx, authorIDs)
	if err != nil {
		return err
	}

	if missing := model.MissingAuthorIDs(authorIDs, existing); len(missing) > 0 {
		return model.MissingAuthors(missing)
	}
	return nil
}

func bookNotFound(id int64, err error) error {
	if errors.Is(err, model.ErrBookNotFound) {
		return model.BookNotFound(id)
	}
	return err
}
