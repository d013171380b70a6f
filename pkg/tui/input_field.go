package tui

// InputField is the single-line prompt editor. It is immutable: every edit
// returns a new value, which keeps rendering and state updates trivially
// consistent. Content is held as runes so cursor movement works across
// multi-byte input.
type InputField struct {
	content []rune
	cursor  int
	Width   int
}

func NewInputField(width int) InputField {
	return InputField{Width: width}
}

func (inf InputField) Content() string {
	return string(inf.content)
}

func (inf InputField) Cursor() int {
	return inf.cursor
}

func (inf InputField) WithWidth(width int) InputField {
	inf.Width = width
	return inf
}

func (inf InputField) InsertRune(r rune) InputField {
	content := make([]rune, 0, len(inf.content)+1)
	content = append(content, inf.content[:inf.cursor]...)
	content = append(content, r)
	content = append(content, inf.content[inf.cursor:]...)

	inf.content = content
	inf.cursor++
	return inf
}

func (inf InputField) DeleteBackward() InputField {
	if inf.cursor == 0 {
		return inf
	}

	content := make([]rune, 0, len(inf.content)-1)
	content = append(content, inf.content[:inf.cursor-1]...)
	content = append(content, inf.content[inf.cursor:]...)

	inf.content = content
	inf.cursor--
	return inf
}

func (inf InputField) CursorLeft() InputField {
	if inf.cursor > 0 {
		inf.cursor--
	}
	return inf
}

func (inf InputField) CursorRight() InputField {
	if inf.cursor < len(inf.content) {
		inf.cursor++
	}
	return inf
}

func (inf InputField) CursorHome() InputField {
	inf.cursor = 0
	return inf
}

func (inf InputField) CursorEnd() InputField {
	inf.cursor = len(inf.content)
	return inf
}

func (inf InputField) Clear() InputField {
	inf.content = nil
	inf.cursor = 0
	return inf
}

func (inf InputField) IsEmpty() bool {
	return len(inf.content) == 0
}
