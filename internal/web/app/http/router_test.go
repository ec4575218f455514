package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notehub/internal/domain/entities"
	"notehub/internal/remote"
	"notehub/internal/web/adapters/cache"
	"notehub/internal/web/adapters/drafts"
	"notehub/internal/web/app/gate"
	webhttp "notehub/internal/web/app/http"
	"notehub/internal/web/app/http/middleware"
	"notehub/internal/web/app/services"
	"notehub/internal/web/resilience"
)

var testUser = entities.User{ID: "u1", Email: "jane@example.com", Username: "jane"}

// fakeRemote имитирует удаленный API: вход выдает acc-1/ref-1,
// проверка сессии по ref-1 выдает acc-2/ref-2.
type fakeRemote struct {
	mu           sync.Mutex
	noteQueries  []url.Values
	meTokens     []string
	sessionCalls int
	logoutCalls  int
	created      []entities.NoteInput
}

func (f *fakeRemote) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req entities.AuthRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "secret" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
			return
		}
		http.SetCookie(w, &http.Cookie{Name: entities.CookieAccessToken, Value: "acc-1", Path: "/"})
		http.SetCookie(w, &http.Cookie{Name: entities.CookieRefreshToken, Value: "ref-1", Path: "/"})
		writeJSON(w, http.StatusOK, testUser)
	})

	mux.HandleFunc("POST /auth/register", func(w http.ResponseWriter, r *http.Request) {
		var req entities.AuthRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		http.SetCookie(w, &http.Cookie{Name: entities.CookieAccessToken, Value: "acc-1", Path: "/", MaxAge: 900})
		http.SetCookie(w, &http.Cookie{Name: entities.CookieRefreshToken, Value: "ref-1", Path: "/"})
		writeJSON(w, http.StatusCreated, entities.User{ID: "u2", Email: req.Email, Username: "new"})
	})

	// Удаленный выход всегда падает: локальная очистка cookie не должна от этого зависеть.
	mux.HandleFunc("POST /auth/logout", func(w http.ResponseWriter, _ *http.Request) {
		f.mu.Lock()
		f.logoutCalls++
		f.mu.Unlock()
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "boom"})
	})

	mux.HandleFunc("PATCH /users/me", func(w http.ResponseWriter, r *http.Request) {
		var upd entities.UserUpdate
		_ = json.NewDecoder(r.Body).Decode(&upd)
		if upd.Username == "taken" {
			writeJSON(w, http.StatusConflict, map[string]string{"message": "Username already exists"})
			return
		}
		user := testUser
		user.Username = upd.Username
		writeJSON(w, http.StatusOK, user)
	})

	mux.HandleFunc("POST /notes", func(w http.ResponseWriter, r *http.Request) {
		var in entities.NoteInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		f.mu.Lock()
		f.created = append(f.created, in)
		f.mu.Unlock()
		writeJSON(w, http.StatusCreated, entities.Note{ID: "n2", Title: in.Title, Content: in.Content, Tag: in.Tag})
	})

	mux.HandleFunc("DELETE /notes/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "n1" {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Note not found"})
			return
		}
		writeJSON(w, http.StatusOK, entities.Note{ID: "n1", Title: "Plan", Tag: entities.TagWork})
	})

	mux.HandleFunc("GET /auth/session", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.sessionCalls++
		f.mu.Unlock()

		ck, err := r.Cookie(entities.CookieRefreshToken)
		if err != nil || ck.Value != "ref-1" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Session expired"})
			return
		}
		http.SetCookie(w, &http.Cookie{Name: entities.CookieAccessToken, Value: "acc-2", Path: "/"})
		http.SetCookie(w, &http.Cookie{Name: entities.CookieRefreshToken, Value: "ref-2", Path: "/"})
		writeJSON(w, http.StatusOK, entities.SessionStatus{Success: true})
	})

	mux.HandleFunc("GET /users/me", func(w http.ResponseWriter, r *http.Request) {
		ck, err := r.Cookie(entities.CookieAccessToken)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
			return
		}
		f.mu.Lock()
		f.meTokens = append(f.meTokens, ck.Value)
		f.mu.Unlock()
		writeJSON(w, http.StatusOK, testUser)
	})

	mux.HandleFunc("GET /notes", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.noteQueries = append(f.noteQueries, r.URL.Query())
		f.mu.Unlock()
		writeJSON(w, http.StatusOK, entities.NotesPage{
			Notes:      []entities.Note{{ID: "n1", Title: "Plan", Content: "Sprint", Tag: entities.Tag(r.URL.Query().Get("tag"))}},
			TotalPages: 3,
		})
	})

	mux.HandleFunc("GET /notes/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "n1" {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Note not found"})
			return
		}
		writeJSON(w, http.StatusOK, entities.Note{ID: "n1", Title: "Plan", Tag: entities.TagWork})
	})

	return mux
}

func (f *fakeRemote) sessions() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sessionCalls
}

func (f *fakeRemote) queries() []url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]url.Values(nil), f.noteQueries...)
}

func (f *fakeRemote) tokens() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.meTokens...)
}

func (f *fakeRemote) logouts() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.logoutCalls
}

func (f *fakeRemote) createdNotes() []entities.NoteInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entities.NoteInput(nil), f.created...)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newTestApp(t *testing.T) (*fiber.App, *fakeRemote) {
	t.Helper()

	fake := &fakeRemote{}
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)

	api, err := remote.NewClient(remote.Config{BaseURL: srv.URL, Timeout: 2 * time.Second})
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	c := cache.NewRedisCache(rdb, time.Minute)
	store := drafts.NewRedisStore(rdb)
	r := resilience.NewServiceResilience("remote-router-test")
	v := services.NewValidator()

	users := services.NewUserService(api, c, r, services.NewTokenHasher("test"), v, time.Minute)
	session := services.NewSessionService(api, r)

	app := fiber.New()
	webhttp.SetupRouter(app, webhttp.Dependencies{
		Gate:    gate.New(session),
		Auth:    services.NewAuthService(api, users, r, v),
		Session: session,
		Users:   users,
		Notes:   services.NewNotesService(api, c, users, store, r, v, time.Minute),
		Drafts:  services.NewDraftService(store, users, v),
		Cookies: middleware.CookieOptions{Secure: false},
	})

	return app, fake
}

func get(t *testing.T, app *fiber.App, target, cookie string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

// send выполняет запрос с JSON телом, если body не nil.
func send(t *testing.T, app *fiber.App, method, target, cookie string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func findCookie(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	out := map[string]any{}
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func cookieValue(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

func TestRouter_PrivatePageWithoutCookiesRedirectsToSignIn(t *testing.T) {
	app, fake := newTestApp(t)

	resp := get(t, app, "/notes", "")

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/sign-in", resp.Header.Get("Location"))
	assert.Zero(t, fake.sessions())
}

func TestRouter_SignInThenProfile(t *testing.T) {
	app, _ := newTestApp(t)

	form := url.Values{"email": {testUser.Email}, "password": {"secret"}}
	req := httptest.NewRequest(http.MethodPost, "/sign-in", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/profile", resp.Header.Get("Location"))
	access := cookieValue(resp, entities.CookieAccessToken)
	refresh := cookieValue(resp, entities.CookieRefreshToken)
	assert.Equal(t, "acc-1", access)
	assert.Equal(t, "ref-1", refresh)

	profile := get(t, app, "/profile", "accessToken="+access+"; refreshToken="+refresh)
	require.Equal(t, http.StatusOK, profile.StatusCode)

	body := decodeBody(t, profile)
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "jane", user["username"])
	assert.Equal(t, testUser.Email, user["email"])
}

func TestRouter_SignInWrongPassword(t *testing.T) {
	app, _ := newTestApp(t)

	form := url.Values{"email": {testUser.Email}, "password": {"nope"}}
	req := httptest.NewRequest(http.MethodPost, "/sign-in", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, cookieValue(resp, entities.CookieAccessToken))
}

func TestRouter_RefreshesSessionWithRefreshToken(t *testing.T) {
	app, fake := newTestApp(t)

	resp := get(t, app, "/profile", "refreshToken=ref-1")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "acc-2", cookieValue(resp, entities.CookieAccessToken))
	assert.Equal(t, "ref-2", cookieValue(resp, entities.CookieRefreshToken))

	body := decodeBody(t, resp)
	assert.Contains(t, body, "user")

	// Обработчик страницы уже видит обновленный access-токен.
	assert.Equal(t, []string{"acc-2"}, fake.tokens())
	assert.Equal(t, 1, fake.sessions())
}

func TestRouter_ExpiredRefreshRedirectsToSignIn(t *testing.T) {
	app, fake := newTestApp(t)

	resp := get(t, app, "/notes/filter/all", "refreshToken=stale")

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/sign-in", resp.Header.Get("Location"))
	assert.Equal(t, 1, fake.sessions())
	assert.Empty(t, fake.queries())
}

func TestRouter_PublicOnlyPageRedirectsAuthenticatedUser(t *testing.T) {
	app, _ := newTestApp(t)

	for _, path := range []string{"/sign-in", "/sign-up"} {
		resp := get(t, app, path, "accessToken=acc-1")
		assert.Equal(t, http.StatusFound, resp.StatusCode, path)
		assert.Equal(t, "/profile", resp.Header.Get("Location"), path)
	}

	resp := get(t, app, "/sign-in", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_FilteredNotesSendsTagAndPaging(t *testing.T) {
	app, fake := newTestApp(t)
	cookie := "accessToken=acc-1; refreshToken=ref-1"

	resp := get(t, app, "/notes/filter/Work", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Work", body["tag"])
	assert.EqualValues(t, 1, body["page"])
	assert.EqualValues(t, 12, body["perPage"])
	assert.EqualValues(t, 3, body["totalPages"])

	resp = get(t, app, "/notes/filter/Personal?page=2&search=milk", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	queries := fake.queries()
	require.Len(t, queries, 2)

	first := queries[0]
	assert.Equal(t, "Work", first.Get("tag"))
	assert.Equal(t, "1", first.Get("page"))
	assert.Equal(t, "12", first.Get("perPage"))
	assert.False(t, first.Has("search"))

	second := queries[1]
	assert.Equal(t, "Personal", second.Get("tag"))
	assert.Equal(t, "2", second.Get("page"))
	assert.Equal(t, "milk", second.Get("search"))
}

func TestRouter_AllNotesOmitsTag(t *testing.T) {
	app, fake := newTestApp(t)

	resp := get(t, app, "/notes", "accessToken=acc-1")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/notes/filter/all", resp.Header.Get("Location"))

	resp = get(t, app, "/notes/filter/all", "accessToken=acc-1")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	queries := fake.queries()
	require.Len(t, queries, 1)
	assert.False(t, queries[0].Has("tag"))
}

func TestRouter_NoteDetails(t *testing.T) {
	app, _ := newTestApp(t)

	resp := get(t, app, "/notes/n1", "accessToken=acc-1")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = get(t, app, "/notes/missing", "accessToken=acc-1")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Note not found", decodeBody(t, resp)["error"])
}

func TestRouter_UnknownPage(t *testing.T) {
	app, _ := newTestApp(t)

	resp := get(t, app, "/does-not-exist", "")

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Page not found", decodeBody(t, resp)["error"])
}

func TestRouter_HealthAndRequestID(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(middleware.HeaderRequestID, "req-42")

	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "req-42", resp.Header.Get(middleware.HeaderRequestID))

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(middleware.HeaderRequestID, "bad id\twith spaces")

	resp, err = app.Test(req)
	require.NoError(t, err)

	replaced := resp.Header.Get(middleware.HeaderRequestID)
	assert.NotEmpty(t, replaced)
	assert.NotContains(t, replaced, " ")
}

func TestRouter_APILoginRelaysCookies(t *testing.T) {
	app, _ := newTestApp(t)

	resp := send(t, app, http.MethodPost, "/api/auth/login", "",
		entities.AuthRequest{Email: testUser.Email, Password: "secret"})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	access := findCookie(resp, entities.CookieAccessToken)
	require.NotNil(t, access)
	assert.Equal(t, "acc-1", access.Value)
	assert.Equal(t, "/", access.Path)
	assert.True(t, access.HttpOnly)
	assert.Equal(t, "ref-1", cookieValue(resp, entities.CookieRefreshToken))
	assert.Equal(t, "jane", decodeBody(t, resp)["username"])
}

func TestRouter_APILoginWrongPassword(t *testing.T) {
	app, _ := newTestApp(t)

	resp := send(t, app, http.MethodPost, "/api/auth/login", "",
		entities.AuthRequest{Email: testUser.Email, Password: "nope"})

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Nil(t, findCookie(resp, entities.CookieAccessToken))
	assert.Equal(t, "Unauthorized", decodeBody(t, resp)["error"])
}

func TestRouter_APILoginInvalidBody(t *testing.T) {
	app, _ := newTestApp(t)

	resp := send(t, app, http.MethodPost, "/api/auth/login", "",
		entities.AuthRequest{Email: "not-an-email", Password: "secret"})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid request", decodeBody(t, resp)["error"])
}

func TestRouter_APIRegisterRelaysCookies(t *testing.T) {
	app, _ := newTestApp(t)

	resp := send(t, app, http.MethodPost, "/api/auth/register", "",
		entities.AuthRequest{Email: "new@example.com", Password: "secret"})

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	access := findCookie(resp, entities.CookieAccessToken)
	require.NotNil(t, access)
	assert.Equal(t, "acc-1", access.Value)
	assert.Equal(t, 900, access.MaxAge)
	assert.Equal(t, "ref-1", cookieValue(resp, entities.CookieRefreshToken))
	assert.Equal(t, "new@example.com", decodeBody(t, resp)["email"])
}

func TestRouter_APISession(t *testing.T) {
	app, fake := newTestApp(t)

	resp := send(t, app, http.MethodGet, "/api/auth/session", "refreshToken=ref-1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "acc-2", cookieValue(resp, entities.CookieAccessToken))
	assert.Equal(t, "ref-2", cookieValue(resp, entities.CookieRefreshToken))
	assert.Equal(t, true, decodeBody(t, resp)["success"])

	resp = send(t, app, http.MethodGet, "/api/auth/session", "refreshToken=stale", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Nil(t, findCookie(resp, entities.CookieAccessToken))
	assert.Equal(t, false, decodeBody(t, resp)["success"])

	assert.Equal(t, 2, fake.sessions())
}

func TestRouter_APILogoutClearsCookiesWhenRemoteFails(t *testing.T) {
	app, fake := newTestApp(t)

	resp := send(t, app, http.MethodPost, "/api/auth/logout", "accessToken=acc-1; refreshToken=ref-1", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, fake.logouts())

	for _, name := range []string{entities.CookieAccessToken, entities.CookieRefreshToken} {
		ck := findCookie(resp, name)
		require.NotNil(t, ck, name)
		assert.Empty(t, ck.Value, name)
		assert.True(t, ck.Expires.Before(time.Now()), name)
	}
	assert.Equal(t, "Logged out", decodeBody(t, resp)["message"])
}

func TestRouter_APIMeRequiresSession(t *testing.T) {
	app, _ := newTestApp(t)

	resp := send(t, app, http.MethodGet, "/api/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Unauthorized", decodeBody(t, resp)["error"])

	resp = send(t, app, http.MethodGet, "/api/users/me", "accessToken=acc-1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "jane", decodeBody(t, resp)["username"])
}

func TestRouter_APIUpdateProfile(t *testing.T) {
	app, _ := newTestApp(t)
	cookie := "accessToken=acc-1"

	resp := send(t, app, http.MethodPatch, "/api/users/me", cookie, entities.UserUpdate{Username: "janedoe"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "janedoe", decodeBody(t, resp)["username"])

	resp = send(t, app, http.MethodPatch, "/api/users/me", cookie, entities.UserUpdate{Username: "taken"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "This username is already taken. Please try another one.", decodeBody(t, resp)["error"])

	resp = send(t, app, http.MethodPatch, "/api/users/me", cookie, entities.UserUpdate{Username: ""})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouter_APINotesQueryParameters(t *testing.T) {
	app, fake := newTestApp(t)
	cookie := "accessToken=acc-1"

	resp := send(t, app, http.MethodGet, "/api/notes?search=+milk+&tag=all&page=2", cookie, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = send(t, app, http.MethodGet, "/api/notes?tag=Work&perPage=1000", cookie, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	queries := fake.queries()
	require.Len(t, queries, 2)

	assert.Equal(t, "milk", queries[0].Get("search"))
	assert.False(t, queries[0].Has("tag"))
	assert.Equal(t, "2", queries[0].Get("page"))
	assert.Equal(t, "12", queries[0].Get("perPage"))

	assert.Equal(t, "Work", queries[1].Get("tag"))
	assert.Equal(t, "1", queries[1].Get("page"))
	assert.Equal(t, strconv.Itoa(entities.MaxPerPage), queries[1].Get("perPage"))
}

func TestRouter_APINotesCacheInvalidatedByCreateAndDelete(t *testing.T) {
	app, fake := newTestApp(t)
	cookie := "accessToken=acc-1"

	for range 2 {
		resp := send(t, app, http.MethodGet, "/api/notes?tag=Work", cookie, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
	require.Len(t, fake.queries(), 1, "second list must be served from cache")

	resp := send(t, app, http.MethodPut, "/api/draft", cookie,
		entities.DraftEnvelope{Draft: entities.Draft{Title: "Buy milk", Tag: "Shopping"}})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	in := entities.NoteInput{Title: "Buy milk", Content: "2 liters", Tag: entities.TagShopping}
	resp = send(t, app, http.MethodPost, "/api/notes", cookie, in)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "n2", decodeBody(t, resp)["id"])
	assert.Equal(t, []entities.NoteInput{in}, fake.createdNotes())

	// Создание заметки очищает серверный черновик.
	resp = send(t, app, http.MethodGet, "/api/draft", cookie, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	draft, ok := decodeBody(t, resp)["draft"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Todo", draft["tag"])
	assert.Empty(t, draft["title"])

	resp = send(t, app, http.MethodGet, "/api/notes?tag=Work", cookie, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, fake.queries(), 2)

	resp = send(t, app, http.MethodDelete, "/api/notes/n1", cookie, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = send(t, app, http.MethodGet, "/api/notes?tag=Work", cookie, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, fake.queries(), 3)
}

func TestRouter_APICreateNoteValidation(t *testing.T) {
	app, fake := newTestApp(t)

	resp := send(t, app, http.MethodPost, "/api/notes", "accessToken=acc-1",
		entities.NoteInput{Title: "ab", Content: "x", Tag: entities.TagWork})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid request", decodeBody(t, resp)["error"])
	assert.Empty(t, fake.createdNotes())
}

func TestRouter_APINoteNotFound(t *testing.T) {
	app, _ := newTestApp(t)

	resp := send(t, app, http.MethodGet, "/api/notes/missing", "accessToken=acc-1", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Note not found", decodeBody(t, resp)["error"])

	resp = send(t, app, http.MethodDelete, "/api/notes/missing", "accessToken=acc-1", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = send(t, app, http.MethodGet, "/api/notes/n1", "accessToken=acc-1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Plan", decodeBody(t, resp)["title"])
}

func TestRouter_APIDraftRoundTrip(t *testing.T) {
	app, _ := newTestApp(t)
	cookie := "accessToken=acc-1"

	resp := send(t, app, http.MethodGet, "/api/draft", cookie, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var env entities.DraftEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.Equal(t, entities.InitialDraft(), env.Draft)

	saved := entities.Draft{Title: "Standup", Content: "Notes for Monday", Tag: "Meeting"}
	resp = send(t, app, http.MethodPut, "/api/draft", cookie, entities.DraftEnvelope{Draft: saved})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = send(t, app, http.MethodGet, "/api/draft", cookie, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.Equal(t, saved, env.Draft)

	resp = send(t, app, http.MethodPut, "/api/draft", cookie,
		entities.DraftEnvelope{Draft: entities.Draft{Tag: "Hobby"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = send(t, app, http.MethodDelete, "/api/draft", cookie, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = send(t, app, http.MethodGet, "/api/draft", cookie, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.True(t, env.Draft.IsInitial())
}

func TestRouter_APIDraftRequiresSession(t *testing.T) {
	app, _ := newTestApp(t)

	resp := send(t, app, http.MethodGet, "/api/draft", "", nil)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
