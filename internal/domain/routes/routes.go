// Package routes классифицирует пути приложения для гейта сессии и клиентского guard.
package routes

import "strings"

// Class класс маршрута.
type Class int

// Классы маршрутов.
const (
	// Unrestricted маршрут доступен всем.
	Unrestricted Class = iota
	// Private маршрут требует действующей сессии.
	Private
	// PublicOnly маршрут имеет смысл только для анонимного посетителя.
	PublicOnly
)

// Пути перенаправлений.
const (
	SignInPath  = "/sign-in"
	SignUpPath  = "/sign-up"
	ProfilePath = "/profile"
	NotesPath   = "/notes"
)

var (
	privatePrefixes    = []string{ProfilePath, NotesPath}
	publicOnlyPrefixes = []string{SignInPath, SignUpPath}
)

// Classify возвращает класс пути по префиксу.
func Classify(path string) Class {
	switch {
	case hasAnyPrefix(path, privatePrefixes):
		return Private
	case hasAnyPrefix(path, publicOnlyPrefixes):
		return PublicOnly
	default:
		return Unrestricted
	}
}

// IsPrivate сообщает, является ли путь приватным.
func IsPrivate(path string) bool {
	return Classify(path) == Private
}

func hasAnyPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func (c Class) String() string {
	switch c {
	case Private:
		return "private"
	case PublicOnly:
		return "public-only"
	default:
		return "unrestricted"
	}
}
