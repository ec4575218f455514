// Package entities содержит доменные сущности NoteHub, общие для веб-сервера и клиента.
package entities

import (
	"errors"
	"strings"
	"time"
)

// Tag категория заметки из закрытого набора.
type Tag string

// Допустимые теги заметок.
const (
	TagTodo     Tag = "Todo"
	TagWork     Tag = "Work"
	TagPersonal Tag = "Personal"
	TagMeeting  Tag = "Meeting"
	TagShopping Tag = "Shopping"
)

// TagAll псевдо-тег фильтра "все заметки".
const TagAll = "all"

// Ошибки домена заметок.
var (
	ErrUnknownTag   = errors.New("unknown note tag")
	ErrNoteNotFound = errors.New("note not found")
)

// Tags возвращает закрытый набор тегов в порядке отображения.
func Tags() []Tag {
	return []Tag{TagTodo, TagWork, TagPersonal, TagMeeting, TagShopping}
}

// ParseTag проверяет, что строка принадлежит набору тегов.
func ParseTag(s string) (Tag, error) {
	s = strings.TrimSpace(s)
	for _, t := range Tags() {
		if string(t) == s {
			return t, nil
		}
	}
	return "", ErrUnknownTag
}

// Note представляет заметку, принадлежащую удаленному API.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tag       Tag       `json:"tag"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NoteInput содержит изменяемые поля заметки для создания.
type NoteInput struct {
	Title   string `json:"title" validate:"required,min=3,max=50"`
	Content string `json:"content" validate:"required,max=500"`
	Tag     Tag    `json:"tag" validate:"required,oneof=Todo Work Personal Meeting Shopping"`
}

// NotesPage страница списка заметок.
type NotesPage struct {
	Notes      []Note `json:"notes"`
	TotalPages int    `json:"totalPages"`
}
