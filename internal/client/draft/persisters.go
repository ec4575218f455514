package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"notehub/internal/domain/entities"
)

// FileName имя файла черновика в каталоге состояния клиента.
const FileName = entities.DraftKey + ".json"

// Константы для сообщений об ошибках.
const (
	ErrReadFile   = "failed to read draft file"
	ErrWriteFile  = "failed to write draft file"
	ErrDecodeFile = "failed to decode draft file"
)

// FilePersister хранит черновик в JSON-файле в формате {"draft": {...}}.
type FilePersister struct {
	path string
}

var _ Persister = (*FilePersister)(nil)

// NewFilePersister создает Persister для файла FileName в каталоге dir.
func NewFilePersister(dir string) *FilePersister {
	return &FilePersister{path: filepath.Join(dir, FileName)}
}

// Path возвращает путь к файлу черновика.
func (p *FilePersister) Path() string {
	return p.path
}

// Load читает черновик. Отсутствующий файл означает начальный черновик.
func (p *FilePersister) Load(_ context.Context) (entities.Draft, error) {
	data, err := os.ReadFile(p.path)
	if errors.Is(err, fs.ErrNotExist) {
		return entities.InitialDraft(), nil
	}
	if err != nil {
		return entities.Draft{}, fmt.Errorf("%s: %w", ErrReadFile, err)
	}

	var env entities.DraftEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return entities.Draft{}, fmt.Errorf("%s: %w", ErrDecodeFile, err)
	}
	return env.Draft, nil
}

// Save записывает черновик через временный файл и rename.
func (p *FilePersister) Save(_ context.Context, d entities.Draft) error {
	data, err := json.Marshal(entities.DraftEnvelope{Draft: d})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrWriteFile, err)
	}

	if err := os.MkdirAll(filepath.Dir(p.path), 0o700); err != nil {
		return fmt.Errorf("%s: %w", ErrWriteFile, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(p.path), FileName+".*")
	if err != nil {
		return fmt.Errorf("%s: %w", ErrWriteFile, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%s: %w", ErrWriteFile, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrWriteFile, err)
	}
	if err := os.Rename(tmp.Name(), p.path); err != nil {
		return fmt.Errorf("%s: %w", ErrWriteFile, err)
	}
	return nil
}

// Clear записывает начальный черновик.
func (p *FilePersister) Clear(ctx context.Context) error {
	return p.Save(ctx, entities.InitialDraft())
}

// RemoteAPI операции черновика серверного /api/draft.
type RemoteAPI interface {
	Draft(ctx context.Context) (entities.Draft, error)
	SaveDraft(ctx context.Context, d entities.Draft) error
	DeleteDraft(ctx context.Context) error
}

// RemotePersister хранит черновик на веб-сервере NoteHub, привязанным к пользователю.
type RemotePersister struct {
	api RemoteAPI
}

var _ Persister = (*RemotePersister)(nil)

// NewRemotePersister создает Persister поверх серверного API черновика.
func NewRemotePersister(api RemoteAPI) *RemotePersister {
	return &RemotePersister{api: api}
}

// Load получает черновик с сервера.
func (p *RemotePersister) Load(ctx context.Context) (entities.Draft, error) {
	return p.api.Draft(ctx)
}

// Save сохраняет черновик на сервере.
func (p *RemotePersister) Save(ctx context.Context, d entities.Draft) error {
	return p.api.SaveDraft(ctx, d)
}

// Clear удаляет черновик на сервере.
func (p *RemotePersister) Clear(ctx context.Context) error {
	return p.api.DeleteDraft(ctx)
}
