package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"notehub/internal/domain/entities"
)

// Константы для сообщений об ошибках.
const (
	ErrListNotes  = "failed to list notes"
	ErrGetNote    = "failed to get note"
	ErrCreateNote = "failed to create note"
	ErrDeleteNote = "failed to delete note"
)

// ListNotes запрашивает страницу заметок. Пустой поиск и тег "all" не передаются.
func (c *Client) ListNotes(ctx context.Context, q entities.NotesQuery) (*entities.NotesPage, error) {
	q = q.Normalize()

	params := url.Values{}
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	if q.Tag != "" {
		params.Set("tag", q.Tag)
	}
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("perPage", strconv.Itoa(q.PerPage))

	resp, err := do[entities.NotesPage](ctx, c, http.MethodGet, "/notes", params, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrListNotes, err)
	}
	if resp.Data.Notes == nil {
		resp.Data.Notes = []entities.Note{}
	}

	return &resp.Data, nil
}

// GetNote запрашивает заметку по идентификатору.
func (c *Client) GetNote(ctx context.Context, id string) (*entities.Note, error) {
	resp, err := do[entities.Note](ctx, c, http.MethodGet, noteURL(id), nil, nil)
	if err != nil {
		if StatusCode(err) == http.StatusNotFound {
			return nil, fmt.Errorf("%s: %w", ErrGetNote, errors.Join(entities.ErrNoteNotFound, err))
		}
		return nil, fmt.Errorf("%s: %w", ErrGetNote, err)
	}

	return &resp.Data, nil
}

// CreateNote создает заметку.
func (c *Client) CreateNote(ctx context.Context, in entities.NoteInput) (*entities.Note, error) {
	resp, err := do[entities.Note](ctx, c, http.MethodPost, "/notes", nil, in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrCreateNote, err)
	}

	return &resp.Data, nil
}

// DeleteNote удаляет заметку и возвращает ее последнюю версию.
func (c *Client) DeleteNote(ctx context.Context, id string) (*entities.Note, error) {
	resp, err := do[entities.Note](ctx, c, http.MethodDelete, noteURL(id), nil, nil)
	if err != nil {
		if StatusCode(err) == http.StatusNotFound {
			return nil, fmt.Errorf("%s: %w", ErrDeleteNote, errors.Join(entities.ErrNoteNotFound, err))
		}
		return nil, fmt.Errorf("%s: %w", ErrDeleteNote, err)
	}

	return &resp.Data, nil
}

func noteURL(id string) string {
	return "/notes/" + url.PathEscape(id)
}
