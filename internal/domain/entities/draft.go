package entities

// DraftKey ключ хранилища черновика заметки.
const DraftKey = "note-draft"

// Draft черновик формы создания заметки.
type Draft struct {
	Title   string `json:"title" validate:"max=50"`
	Content string `json:"content" validate:"max=500"`
	Tag     string `json:"tag" validate:"omitempty,oneof=Todo Work Personal Meeting Shopping"`
}

// DraftEnvelope формат хранения черновика: {"draft": {...}}.
type DraftEnvelope struct {
	Draft Draft `json:"draft"`
}

// InitialDraft возвращает черновик после очистки.
func InitialDraft() Draft {
	return Draft{Tag: string(TagTodo)}
}

// IsInitial сообщает, совпадает ли черновик с начальным.
func (d Draft) IsInitial() bool {
	return d == InitialDraft()
}

// Input преобразует черновик во входные данные создания заметки.
func (d Draft) Input() NoteInput {
	return NoteInput{Title: d.Title, Content: d.Content, Tag: Tag(d.Tag)}
}
