package draft

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"notehub/internal/domain/entities"
	"notehub/pkg/debounce"
	"notehub/pkg/logger"
)

// DefaultSaveDelay задержка сохранения правок формы.
const DefaultSaveDelay = 1000 * time.Millisecond

// Константы для логирования и ошибок формы.
const (
	LogDraftSaveFailed = "failed to save draft edit"
	ErrCreateNote      = "failed to create note"
)

// ErrInvalidNote введенные данные не проходят проверку.
var ErrInvalidNote = errors.New("invalid note")

// NoteCreator создает заметку на удаленной стороне.
type NoteCreator interface {
	CreateNote(ctx context.Context, in entities.NoteInput) (*entities.Note, error)
}

type edit struct {
	draft entities.Draft
	epoch uint64
}

// Form состояние формы создания заметки. Правки попадают в Store
// после паузы DefaultSaveDelay; Close сохраняет отложенную правку сразу.
type Form struct {
	ctx       context.Context
	store     *Store
	validate  *validator.Validate
	debouncer *debounce.Debouncer[edit]

	mu      sync.Mutex
	current entities.Draft
	epoch   uint64
	saveErr error

	// saveMu упорядочивает отложенное сохранение и очистку после отправки.
	saveMu sync.Mutex
}

// NewForm создает форму, заполненную текущим черновиком.
// delay <= 0 означает DefaultSaveDelay.
func NewForm(ctx context.Context, store *Store, delay time.Duration) *Form {
	if delay <= 0 {
		delay = DefaultSaveDelay
	}

	f := &Form{
		ctx:      context.WithoutCancel(ctx),
		store:    store,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		current:  store.Draft(),
	}
	f.debouncer = debounce.New(delay, f.save)
	return f
}

// Values возвращает текущие значения полей формы.
func (f *Form) Values() entities.Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}

// SetTitle изменяет заголовок.
func (f *Form) SetTitle(title string) {
	f.update(func(d *entities.Draft) { d.Title = title })
}

// SetContent изменяет текст.
func (f *Form) SetContent(content string) {
	f.update(func(d *entities.Draft) { d.Content = content })
}

// SetTag изменяет тег.
func (f *Form) SetTag(tag entities.Tag) {
	f.update(func(d *entities.Draft) { d.Tag = string(tag) })
}

// Set заменяет все поля формы.
func (f *Form) Set(d entities.Draft) {
	f.update(func(cur *entities.Draft) { *cur = d })
}

func (f *Form) update(apply func(*entities.Draft)) {
	f.mu.Lock()
	apply(&f.current)
	e := edit{draft: f.current, epoch: f.epoch}
	f.mu.Unlock()

	f.debouncer.Call(e)
}

func (f *Form) save(e edit) {
	f.saveMu.Lock()
	defer f.saveMu.Unlock()

	f.mu.Lock()
	stale := e.epoch != f.epoch
	f.mu.Unlock()
	if stale {
		return
	}

	err := f.store.SetDraft(f.ctx, e.draft)
	if err != nil {
		logger.Log(f.ctx).Warn(f.ctx, LogDraftSaveFailed, zap.Error(err))
	}

	f.mu.Lock()
	f.saveErr = err
	f.mu.Unlock()
}

// Pending сообщает, что есть несохраненная правка.
func (f *Form) Pending() bool {
	return f.debouncer.Pending()
}

// Submit проверяет поля и создает заметку. При успехе черновик очищается,
// а отложенное сохранение отменяется.
func (f *Form) Submit(ctx context.Context, creator NoteCreator) (*entities.Note, error) {
	values := f.Values()
	input := values.Input()
	if err := f.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidNote, err)
	}

	note, err := creator.CreateNote(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrCreateNote, err)
	}

	f.debouncer.Cancel()

	f.saveMu.Lock()
	defer f.saveMu.Unlock()

	f.mu.Lock()
	f.epoch++
	f.current = entities.InitialDraft()
	f.mu.Unlock()

	if err := f.store.ClearDraft(ctx); err != nil {
		logger.Log(ctx).Warn(ctx, LogDraftSaveFailed, zap.Error(err))
	}
	return note, nil
}

// Close немедленно сохраняет отложенную правку и возвращает
// ошибку последнего сохранения.
func (f *Form) Close() error {
	f.debouncer.Flush()

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saveErr
}
