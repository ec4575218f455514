package remote

import (
	"context"
	"fmt"
	"net/http"

	"notehub/internal/domain/entities"
)

// Путь черновика на веб-сервере NoteHub. Удаленный API этот ресурс не предоставляет.
const draftPath = "/draft"

// Константы для сообщений об ошибках.
const (
	ErrGetDraft    = "failed to get draft"
	ErrSaveDraft   = "failed to save draft"
	ErrDeleteDraft = "failed to delete draft"
)

// Draft читает серверный черновик.
func (c *Client) Draft(ctx context.Context) (entities.Draft, error) {
	resp, err := do[entities.DraftEnvelope](ctx, c, http.MethodGet, draftPath, nil, nil)
	if err != nil {
		return entities.Draft{}, fmt.Errorf("%s: %w", ErrGetDraft, err)
	}
	return resp.Data.Draft, nil
}

// SaveDraft сохраняет серверный черновик.
func (c *Client) SaveDraft(ctx context.Context, d entities.Draft) error {
	if _, err := do[struct{}](ctx, c, http.MethodPut, draftPath, nil, entities.DraftEnvelope{Draft: d}); err != nil {
		return fmt.Errorf("%s: %w", ErrSaveDraft, err)
	}
	return nil
}

// DeleteDraft очищает серверный черновик.
func (c *Client) DeleteDraft(ctx context.Context) error {
	if _, err := do[struct{}](ctx, c, http.MethodDelete, draftPath, nil, nil); err != nil {
		return fmt.Errorf("%s: %w", ErrDeleteDraft, err)
	}
	return nil
}
