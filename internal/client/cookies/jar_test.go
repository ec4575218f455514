package cookies_test

import (
	"encoding/json"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notehub/internal/client/cookies"
)

func TestFileJar_PersistsCookies(t *testing.T) {
	dir := t.TempDir()
	base := "http://notehub.test/api"

	jar, err := cookies.Open(dir, base)
	require.NoError(t, err)

	u, err := url.Parse(base)
	require.NoError(t, err)
	jar.SetCookies(u, []*http.Cookie{
		{Name: "accessToken", Value: "acc", Path: "/"},
		{Name: "refreshToken", Value: "ref", Path: "/"},
	})
	require.NoError(t, jar.Save())

	reopened, err := cookies.Open(dir, base)
	require.NoError(t, err)
	assert.Equal(t, "acc", reopened.Get("accessToken"))
	assert.Equal(t, "ref", reopened.Get("refreshToken"))
}

func TestFileJar_ExpiredCookieRemovedOnSave(t *testing.T) {
	dir := t.TempDir()
	base := "http://notehub.test"

	jar, err := cookies.Open(dir, base)
	require.NoError(t, err)
	u, _ := url.Parse(base)

	jar.SetCookies(u, []*http.Cookie{{Name: "accessToken", Value: "acc", Path: "/"}})
	jar.SetCookies(u, []*http.Cookie{{Name: "accessToken", Value: "", Path: "/", MaxAge: -1}})
	require.NoError(t, jar.Save())

	reopened, err := cookies.Open(dir, base)
	require.NoError(t, err)
	assert.Empty(t, reopened.Get("accessToken"))
}

func TestFileJar_PersistsExpiry(t *testing.T) {
	dir := t.TempDir()
	base := "http://notehub.test"

	jar, err := cookies.Open(dir, base)
	require.NoError(t, err)
	u, _ := url.Parse(base)

	jar.SetCookies(u, []*http.Cookie{
		{Name: "accessToken", Value: "acc", Path: "/", MaxAge: 900},
		{Name: "refreshToken", Value: "ref", Path: "/", Expires: time.Now().Add(24 * time.Hour)},
		{Name: "theme", Value: "dark", Path: "/"},
	})
	require.NoError(t, jar.Save())

	data, err := os.ReadFile(filepath.Join(dir, cookies.FileName))
	require.NoError(t, err)

	var stored []struct {
		Name    string     `json:"name"`
		Expires *time.Time `json:"expires"`
	}
	require.NoError(t, json.Unmarshal(data, &stored))

	byName := map[string]*time.Time{}
	for _, c := range stored {
		byName[c.Name] = c.Expires
	}
	require.Len(t, byName, 3)
	require.NotNil(t, byName["accessToken"])
	assert.WithinDuration(t, time.Now().Add(900*time.Second), *byName["accessToken"], time.Minute)
	require.NotNil(t, byName["refreshToken"])
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), *byName["refreshToken"], time.Minute)
	assert.Nil(t, byName["theme"])

	reopened, err := cookies.Open(dir, base)
	require.NoError(t, err)
	assert.Equal(t, "acc", reopened.Get("accessToken"))
	assert.Equal(t, "ref", reopened.Get("refreshToken"))
	assert.Equal(t, "dark", reopened.Get("theme"))
}

func TestFileJar_SkipsExpiredOnLoad(t *testing.T) {
	dir := t.TempDir()
	past := time.Now().Add(-time.Minute).UTC()
	future := time.Now().Add(time.Hour).UTC()

	data, err := json.Marshal([]map[string]any{
		{"name": "accessToken", "value": "stale", "expires": past},
		{"name": "refreshToken", "value": "ref", "expires": future},
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, cookies.FileName), data, 0o600))

	jar, err := cookies.Open(dir, "http://notehub.test")
	require.NoError(t, err)

	assert.Empty(t, jar.Get("accessToken"))
	assert.Equal(t, "ref", jar.Get("refreshToken"))

	// Просроченная запись не возвращается в файл при следующем сохранении.
	require.NoError(t, jar.Save())
	reopened, err := cookies.Open(dir, "http://notehub.test")
	require.NoError(t, err)
	assert.Empty(t, reopened.Get("accessToken"))
	assert.Equal(t, "ref", reopened.Get("refreshToken"))
}

func TestFileJar_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, cookies.FileName), []byte("nope"), 0o600))

	_, err := cookies.Open(dir, "http://notehub.test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), cookies.ErrDecodeJar)
}
