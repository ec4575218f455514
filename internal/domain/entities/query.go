package entities

import (
	"strconv"
	"strings"
)

// Значения пагинации по умолчанию.
const (
	DefaultPage    = 1
	DefaultPerPage = 12
	MaxPerPage     = 100
)

// NotesQuery параметры списка заметок: поиск, тег и страница.
type NotesQuery struct {
	Search  string
	Tag     string
	Page    int
	PerPage int
}

// Normalize приводит запрос к каноническому виду.
// perPage ограничивается сверху значением MaxPerPage.
// Пустой тег и "all" означают отсутствие фильтра.
func (q NotesQuery) Normalize() NotesQuery {
	q.Search = strings.TrimSpace(q.Search)
	q.Tag = strings.TrimSpace(q.Tag)
	if strings.EqualFold(q.Tag, TagAll) {
		q.Tag = ""
	}
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	switch {
	case q.PerPage < 1:
		q.PerPage = DefaultPerPage
	case q.PerPage > MaxPerPage:
		q.PerPage = MaxPerPage
	}
	return q
}

// TagKey возвращает тег для ключа кэша, "all" если фильтра нет.
func (q NotesQuery) TagKey() string {
	if n := q.Normalize(); n.Tag != "" {
		return n.Tag
	}
	return TagAll
}

// Key возвращает производный ключ кэша, объединяющий все оси фильтрации.
func (q NotesQuery) Key() string {
	n := q.Normalize()
	return strings.Join([]string{
		"notes",
		n.Search,
		strconv.Itoa(n.Page),
		q.TagKey(),
		strconv.Itoa(n.PerPage),
	}, "|")
}
