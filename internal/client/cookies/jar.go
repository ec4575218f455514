// Package cookies хранит cookie сессии клиента между запусками.
package cookies

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileName имя файла cookie в каталоге состояния клиента.
const FileName = "cookies.json"

// Константы для сообщений об ошибках.
const (
	ErrCreateJar  = "failed to create cookie jar"
	ErrReadJar    = "failed to read cookie file"
	ErrDecodeJar  = "failed to decode cookie file"
	ErrWriteJar   = "failed to write cookie file"
	ErrInvalidURL = "invalid base url"
)

// storedCookie запись файла cookie. Expires пуст у сессионных cookie.
type storedCookie struct {
	Name    string     `json:"name"`
	Value   string     `json:"value"`
	Expires *time.Time `json:"expires,omitempty"`
}

// FileJar cookie jar для одного базового адреса, сохраняемый в файл.
// cookiejar.Jar не отдает срок действия, поэтому он хранится отдельно.
type FileJar struct {
	*cookiejar.Jar
	base *url.URL
	path string
	now  func() time.Time

	mu      sync.Mutex
	expires map[string]time.Time
}

// Open создает jar и загружает сохраненные cookie для baseURL.
func Open(dir, baseURL string) (*FileJar, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrInvalidURL, err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrCreateJar, err)
	}

	j := &FileJar{
		Jar:     jar,
		base:    base,
		path:    filepath.Join(dir, FileName),
		now:     time.Now,
		expires: make(map[string]time.Time),
	}
	if err := j.load(); err != nil {
		return nil, err
	}
	return j, nil
}

func (j *FileJar) load() error {
	data, err := os.ReadFile(j.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: %w", ErrReadJar, err)
	}

	var stored []storedCookie
	if err := json.Unmarshal(data, &stored); err != nil {
		return fmt.Errorf("%s: %w", ErrDecodeJar, err)
	}

	now := j.now()
	cookies := make([]*http.Cookie, 0, len(stored))
	for _, c := range stored {
		ck := &http.Cookie{Name: c.Name, Value: c.Value, Path: "/"}
		if c.Expires != nil {
			if !c.Expires.After(now) {
				continue
			}
			ck.Expires = *c.Expires
		}
		cookies = append(cookies, ck)
	}
	j.SetCookies(j.base, cookies)
	return nil
}

// SetCookies сохраняет cookie в jar и запоминает их абсолютный срок действия.
// Max-Age имеет приоритет над Expires.
func (j *FileJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.Jar.SetCookies(u, cookies)

	now := j.now()
	j.mu.Lock()
	defer j.mu.Unlock()
	for _, c := range cookies {
		switch {
		case c.MaxAge > 0:
			j.expires[c.Name] = now.Add(time.Duration(c.MaxAge) * time.Second)
		case c.MaxAge < 0:
			delete(j.expires, c.Name)
		case !c.Expires.IsZero():
			j.expires[c.Name] = c.Expires.UTC()
		default:
			delete(j.expires, c.Name)
		}
	}
}

// Save записывает текущие cookie базового адреса.
func (j *FileJar) Save() error {
	current := j.Cookies(j.base)
	stored := make([]storedCookie, 0, len(current))

	j.mu.Lock()
	for _, c := range current {
		sc := storedCookie{Name: c.Name, Value: c.Value}
		if exp, ok := j.expires[c.Name]; ok {
			sc.Expires = &exp
		}
		stored = append(stored, sc)
	}
	j.mu.Unlock()

	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrWriteJar, err)
	}
	if err := os.MkdirAll(filepath.Dir(j.path), 0o700); err != nil {
		return fmt.Errorf("%s: %w", ErrWriteJar, err)
	}
	if err := os.WriteFile(j.path, data, 0o600); err != nil {
		return fmt.Errorf("%s: %w", ErrWriteJar, err)
	}
	return nil
}

// Get возвращает значение cookie базового адреса.
func (j *FileJar) Get(name string) string {
	for _, c := range j.Cookies(j.base) {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}
