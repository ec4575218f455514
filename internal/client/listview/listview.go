// Package listview объединяет три оси списка заметок (поиск, страница, тег)
// в один производный ключ и загружает страницы с кэшем и показом
// предыдущих данных, пока новая страница загружается.
package listview

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"notehub/internal/domain/entities"
	"notehub/pkg/debounce"
	"notehub/pkg/logger"
)

// Значения по умолчанию.
const (
	DefaultDebounce  = 800 * time.Millisecond
	DefaultStaleTime = 5 * time.Minute
	DefaultCacheSize = 128
)

// Константы для логирования.
const (
	LogFetchFailed  = "failed to fetch notes page"
	LogStaleDropped = "response for superseded query kept in cache only"
)

// Fetcher загружает страницу заметок.
type Fetcher interface {
	ListNotes(ctx context.Context, q entities.NotesQuery) (*entities.NotesPage, error)
}

// Snapshot состояние списка для отображения.
type Snapshot struct {
	// Input текст поля поиска, Query последнее зафиксированное значение.
	Input      string
	Query      string
	Page       int
	Tag        string
	Key        string
	Notes      []entities.Note
	TotalPages int
	// Fetching страница для Key загружается.
	Fetching bool
	// Placeholder показаны данные предыдущего ключа.
	Placeholder bool
	Err         error
}

type options struct {
	debounce  time.Duration
	staleTime time.Duration
	cacheSize int
	onChange  func(Snapshot)
}

// Option настраивает View.
type Option func(*options)

// WithDebounce задает паузу перед фиксацией поискового запроса.
func WithDebounce(d time.Duration) Option {
	return func(o *options) { o.debounce = d }
}

// WithStaleTime задает время свежести кэшированной страницы.
func WithStaleTime(d time.Duration) Option {
	return func(o *options) { o.staleTime = d }
}

// WithCacheSize задает число кэшируемых страниц.
func WithCacheSize(n int) Option {
	return func(o *options) { o.cacheSize = n }
}

// WithOnChange задает обработчик изменений состояния.
func WithOnChange(fn func(Snapshot)) Option {
	return func(o *options) { o.onChange = fn }
}

type shown struct {
	key  string
	page *entities.NotesPage
}

// View контроллер списка заметок.
type View struct {
	ctx     context.Context
	cancel  context.CancelFunc
	fetcher Fetcher
	opts    options

	cache     *expirable.LRU[string, *entities.NotesPage]
	group     singleflight.Group
	debouncer *debounce.Debouncer[string]
	wg        sync.WaitGroup

	mu       sync.Mutex
	input    string
	query    entities.NotesQuery
	display  shown
	fetching bool
	err      error
}

// New создает View и запускает загрузку начальной страницы.
func New(ctx context.Context, fetcher Fetcher, initial entities.NotesQuery, opts ...Option) *View {
	o := options{
		debounce:  DefaultDebounce,
		staleTime: DefaultStaleTime,
		cacheSize: DefaultCacheSize,
	}
	for _, opt := range opts {
		opt(&o)
	}

	ctx, cancel := context.WithCancel(ctx)
	initial = initial.Normalize()

	v := &View{
		ctx:     ctx,
		cancel:  cancel,
		fetcher: fetcher,
		opts:    o,
		cache:   expirable.NewLRU[string, *entities.NotesPage](o.cacheSize, nil, o.staleTime),
		input:   initial.Search,
		query:   initial,
	}
	v.debouncer = debounce.New(o.debounce, v.commit)

	v.mu.Lock()
	v.refreshLocked()
	v.mu.Unlock()
	v.notify()

	return v
}

// Type обновляет текст поиска. Запрос фиксируется после паузы.
func (v *View) Type(text string) {
	v.mu.Lock()
	v.input = text
	v.mu.Unlock()

	v.debouncer.Call(text)
	v.notify()
}

// Commit немедленно фиксирует отложенный поисковый запрос.
func (v *View) Commit() {
	v.debouncer.Flush()
}

func (v *View) commit(text string) {
	v.mu.Lock()
	next := v.query
	next.Search = text
	next = next.Normalize()
	if next.Search == v.query.Search {
		v.mu.Unlock()
		return
	}
	next.Page = entities.DefaultPage
	v.query = next
	v.refreshLocked()
	v.mu.Unlock()

	v.notify()
}

// SetPage переключает страницу.
func (v *View) SetPage(page int) {
	v.mu.Lock()
	next := v.query
	next.Page = page
	next = next.Normalize()
	if next.Page == v.query.Page {
		v.mu.Unlock()
		return
	}
	v.query = next
	v.refreshLocked()
	v.mu.Unlock()

	v.notify()
}

// SetTag переключает фильтр по тегу и возвращает на первую страницу.
func (v *View) SetTag(tag string) {
	v.mu.Lock()
	next := v.query
	next.Tag = tag
	next = next.Normalize()
	if next.Tag == v.query.Tag {
		v.mu.Unlock()
		return
	}
	next.Page = entities.DefaultPage
	v.query = next
	v.refreshLocked()
	v.mu.Unlock()

	v.notify()
}

// Refetch принудительно загружает текущую страницу, минуя кэш.
func (v *View) Refetch() {
	v.mu.Lock()
	v.cache.Remove(v.query.Key())
	v.refreshLocked()
	v.mu.Unlock()

	v.notify()
}

func (v *View) refreshLocked() {
	key := v.query.Key()

	if page, ok := v.cache.Get(key); ok {
		v.display = shown{key: key, page: page}
		v.fetching = false
		v.err = nil
		return
	}

	v.fetching = true
	q := v.query
	v.wg.Add(1)
	go v.fetch(q, key)
}

func (v *View) fetch(q entities.NotesQuery, key string) {
	defer v.wg.Done()

	res, err, _ := v.group.Do(key, func() (any, error) {
		page, err := v.fetcher.ListNotes(v.ctx, q)
		if err != nil {
			return nil, err
		}
		v.cache.Add(key, page)
		return page, nil
	})

	v.mu.Lock()
	if v.query.Key() != key {
		v.mu.Unlock()
		logger.Log(v.ctx).Debug(v.ctx, LogStaleDropped, zap.String("key", key))
		return
	}

	v.fetching = false
	if err != nil {
		v.err = err
		v.mu.Unlock()
		logger.Log(v.ctx).Warn(v.ctx, LogFetchFailed, zap.String("key", key), zap.Error(err))
		v.notify()
		return
	}

	v.err = nil
	v.display = shown{key: key, page: res.(*entities.NotesPage)}
	v.mu.Unlock()

	v.notify()
}

// Snapshot возвращает текущее состояние.
func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshotLocked()
}

func (v *View) snapshotLocked() Snapshot {
	key := v.query.Key()
	s := Snapshot{
		Input:       v.input,
		Query:       v.query.Search,
		Page:        v.query.Page,
		Tag:         v.query.TagKey(),
		Key:         key,
		Fetching:    v.fetching,
		Placeholder: v.display.page != nil && v.display.key != key,
		Err:         v.err,
	}
	if v.display.page != nil {
		s.Notes = v.display.page.Notes
		s.TotalPages = v.display.page.TotalPages
	}
	return s
}

func (v *View) notify() {
	if v.opts.onChange == nil {
		return
	}
	v.opts.onChange(v.Snapshot())
}

// Wait ожидает завершения запущенных загрузок.
func (v *View) Wait() {
	v.wg.Wait()
}

// Close отменяет отложенный запрос и загрузки.
func (v *View) Close() {
	v.debouncer.Cancel()
	v.cancel()
	v.wg.Wait()
}
