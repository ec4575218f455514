package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"

	"notehub/internal/domain/entities"
	"notehub/internal/remote"
	"notehub/internal/web/adapters/cache"
	"notehub/internal/web/adapters/drafts"
	"notehub/internal/web/app/services"
	"notehub/internal/web/resilience"
)

type mockAPI struct {
	mock.Mock
}

func (m *mockAPI) ListNotes(ctx context.Context, q entities.NotesQuery) (*entities.NotesPage, error) {
	args := m.Called(ctx, q)
	page, _ := args.Get(0).(*entities.NotesPage)
	return page, args.Error(1)
}

func (m *mockAPI) GetNote(ctx context.Context, id string) (*entities.Note, error) {
	args := m.Called(ctx, id)
	note, _ := args.Get(0).(*entities.Note)
	return note, args.Error(1)
}

func (m *mockAPI) CreateNote(ctx context.Context, in entities.NoteInput) (*entities.Note, error) {
	args := m.Called(ctx, in)
	note, _ := args.Get(0).(*entities.Note)
	return note, args.Error(1)
}

func (m *mockAPI) DeleteNote(ctx context.Context, id string) (*entities.Note, error) {
	args := m.Called(ctx, id)
	note, _ := args.Get(0).(*entities.Note)
	return note, args.Error(1)
}

func (m *mockAPI) Register(ctx context.Context, req entities.AuthRequest) (*remote.Response[entities.User], error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*remote.Response[entities.User])
	return resp, args.Error(1)
}

func (m *mockAPI) Login(ctx context.Context, req entities.AuthRequest) (*remote.Response[entities.User], error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*remote.Response[entities.User])
	return resp, args.Error(1)
}

func (m *mockAPI) Logout(ctx context.Context) (*remote.Response[struct{}], error) {
	args := m.Called(ctx)
	resp, _ := args.Get(0).(*remote.Response[struct{}])
	return resp, args.Error(1)
}

func (m *mockAPI) Session(ctx context.Context) (*remote.Response[entities.SessionStatus], error) {
	args := m.Called(ctx)
	resp, _ := args.Get(0).(*remote.Response[entities.SessionStatus])
	return resp, args.Error(1)
}

func (m *mockAPI) Me(ctx context.Context) (*entities.User, error) {
	args := m.Called(ctx)
	user, _ := args.Get(0).(*entities.User)
	return user, args.Error(1)
}

func (m *mockAPI) UpdateMe(ctx context.Context, upd entities.UserUpdate) (*entities.User, error) {
	args := m.Called(ctx, upd)
	user, _ := args.Get(0).(*entities.User)
	return user, args.Error(1)
}

type fixture struct {
	api    *mockAPI
	redis  *miniredis.Miniredis
	drafts *drafts.RedisStore
	users  *services.UserServiceImpl
	auth   *services.AuthServiceImpl
	notes  *services.NotesServiceImpl
	draft  *services.DraftServiceImpl
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	api := &mockAPI{}
	c := cache.NewRedisCache(client, time.Hour)
	store := drafts.NewRedisStore(client)
	r := resilience.NewServiceResilience("remote-test")
	v := services.NewValidator()
	users := services.NewUserService(api, c, r, services.NewTokenHasher("secret"), v, 15*time.Minute)

	return &fixture{
		api:    api,
		redis:  mr,
		drafts: store,
		users:  users,
		auth:   services.NewAuthService(api, users, r, v),
		notes:  services.NewNotesService(api, c, users, store, r, v, 5*time.Minute),
		draft:  services.NewDraftService(store, users, v),
	}
}

func authed(token string) context.Context {
	return remote.WithCookieHeader(context.Background(), "accessToken="+token+"; refreshToken=r")
}
