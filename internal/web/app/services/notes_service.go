package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"notehub/internal/domain/entities"
	"notehub/internal/web/metrics"
	"notehub/internal/web/ports/cache"
	"notehub/internal/web/ports/drafts"
	remotePort "notehub/internal/web/ports/remote"
	"notehub/internal/web/ports/services"
	"notehub/internal/web/resilience"
	"notehub/pkg/logger"
)

// Константы для логирования.
const (
	LogServiceListNotes  = "notes service: list notes"
	LogServiceCreateNote = "notes service: create note"
	LogServiceDeleteNote = "notes service: delete note"
	LogNotesCacheFailed  = "failed to cache notes page"
	LogBumpGenFailed     = "failed to bump notes cache generation"
	LogClearDraftFailed  = "failed to clear draft after note creation"

	ErrorListNotesFailed  = "failed to list notes"
	ErrorGetNoteFailed    = "failed to get note"
	ErrorCreateNoteFailed = "failed to create note"
	ErrorDeleteNoteFailed = "failed to delete note"
)

// Префиксы ключей кэша списков.
const (
	NotesCacheKeyPrefix = "notes:"
	NotesGenKeyPrefix   = "notes-gen:"
)

const notesCacheName = "notes"

// NotesServiceImpl реализует интерфейс NotesService.
// Страницы списка кэшируются на пользователя; создание и удаление
// увеличивают счетчик поколения, и старые страницы больше не читаются.
type NotesServiceImpl struct {
	api        remotePort.API
	cache      cache.Cache
	users      services.UserService
	drafts     drafts.Store
	resilience *resilience.ServiceResilience
	validator  *Validator
	ttl        time.Duration
	group      singleflight.Group
}

var _ services.NotesService = (*NotesServiceImpl)(nil)

// NewNotesService создает сервис заметок.
func NewNotesService(
	api remotePort.API,
	c cache.Cache,
	users services.UserService,
	store drafts.Store,
	r *resilience.ServiceResilience,
	v *Validator,
	ttl time.Duration,
) *NotesServiceImpl {
	return &NotesServiceImpl{
		api:        api,
		cache:      c,
		users:      users,
		drafts:     store,
		resilience: r,
		validator:  v,
		ttl:        ttl,
	}
}

// List возвращает страницу заметок, используя кэш списков.
func (s *NotesServiceImpl) List(ctx context.Context, q entities.NotesQuery) (*entities.NotesPage, error) {
	q = q.Normalize()
	log := logger.Log(ctx).With(zap.String("query_key", q.Key()))
	log.Debug(ctx, LogServiceListNotes)

	scope, err := s.users.Scope(ctx)
	if err != nil {
		log.Debug(ctx, "notes cache bypassed", zap.Error(err))
		return s.fetch(ctx, q)
	}

	key := NotesCacheKeyPrefix + scope + ":" + s.generation(ctx, scope) + ":" + q.Key()
	if page, ok := s.cached(ctx, key); ok {
		return page, nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		page, err := s.fetch(ctx, q)
		if err != nil {
			return nil, err
		}
		s.store(ctx, key, page)
		return page, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*entities.NotesPage), nil
}

// Get возвращает заметку по идентификатору.
func (s *NotesServiceImpl) Get(ctx context.Context, id string) (*entities.Note, error) {
	note, err := call(ctx, s.resilience, "GetNote", func() (*entities.Note, error) {
		return s.api.GetNote(ctx, id)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorGetNoteFailed, err)
	}
	return note, nil
}

// Create создает заметку, сбрасывает кэш списков и очищает черновик.
func (s *NotesServiceImpl) Create(ctx context.Context, in entities.NoteInput) (*entities.Note, error) {
	log := logger.Log(ctx)
	log.Info(ctx, LogServiceCreateNote)

	in.Title = strings.TrimSpace(in.Title)
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}

	note, err := call(ctx, s.resilience, "CreateNote", func() (*entities.Note, error) {
		return s.api.CreateNote(ctx, in)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorCreateNoteFailed, err)
	}

	if scope, err := s.users.Scope(ctx); err == nil {
		s.bumpGeneration(ctx, scope)
		if err := s.drafts.Delete(ctx, scope); err != nil {
			log.Warn(ctx, LogClearDraftFailed, zap.Error(err))
		}
	}

	return note, nil
}

// Delete удаляет заметку и сбрасывает кэш списков.
func (s *NotesServiceImpl) Delete(ctx context.Context, id string) (*entities.Note, error) {
	logger.Log(ctx).Info(ctx, LogServiceDeleteNote, zap.String("note_id", id))

	note, err := call(ctx, s.resilience, "DeleteNote", func() (*entities.Note, error) {
		return s.api.DeleteNote(ctx, id)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorDeleteNoteFailed, err)
	}

	if scope, err := s.users.Scope(ctx); err == nil {
		s.bumpGeneration(ctx, scope)
	}

	return note, nil
}

func (s *NotesServiceImpl) fetch(ctx context.Context, q entities.NotesQuery) (*entities.NotesPage, error) {
	page, err := call(ctx, s.resilience, "ListNotes", func() (*entities.NotesPage, error) {
		return s.api.ListNotes(ctx, q)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorListNotesFailed, err)
	}
	return page, nil
}

func (s *NotesServiceImpl) generation(ctx context.Context, scope string) string {
	gen, err := s.cache.Get(ctx, NotesGenKeyPrefix+scope)
	if err != nil || gen == "" {
		return "0"
	}
	return gen
}

func (s *NotesServiceImpl) bumpGeneration(ctx context.Context, scope string) {
	if _, err := s.cache.Incr(ctx, NotesGenKeyPrefix+scope); err != nil {
		logger.Log(ctx).Warn(ctx, LogBumpGenFailed, zap.Error(err))
	}
}

func (s *NotesServiceImpl) cached(ctx context.Context, key string) (*entities.NotesPage, bool) {
	raw, err := s.cache.Get(ctx, key)
	switch {
	case err != nil:
		metrics.TrackCacheLookup(notesCacheName, metrics.CacheError)
		return nil, false
	case raw == "":
		metrics.TrackCacheLookup(notesCacheName, metrics.CacheMiss)
		return nil, false
	}

	var page entities.NotesPage
	if err := json.Unmarshal([]byte(raw), &page); err != nil {
		metrics.TrackCacheLookup(notesCacheName, metrics.CacheError)
		return nil, false
	}

	metrics.TrackCacheLookup(notesCacheName, metrics.CacheHit)
	return &page, true
}

func (s *NotesServiceImpl) store(ctx context.Context, key string, page *entities.NotesPage) {
	raw, err := json.Marshal(page)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(raw), s.ttl); err != nil {
		logger.Log(ctx).Warn(ctx, LogNotesCacheFailed, zap.Error(err))
	}
}
