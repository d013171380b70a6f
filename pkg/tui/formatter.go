package tui

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"
)

// Span is a run of text drawn with one style.
type Span struct {
	Text  string
	Style tcell.Style
}

// StyledLine is one renderable line of a formatted message.
type StyledLine struct {
	Spans  []Span
	Indent int
}

// MessageFormatter turns message content into styled lines: word-wrapped
// prose, bullet lists, and syntax-highlighted fenced code blocks.
type MessageFormatter struct {
	width     int
	baseStyle tcell.Style
}

func NewMessageFormatter(width int, baseStyle tcell.Style) *MessageFormatter {
	if width < 20 {
		width = 20
	}
	return &MessageFormatter{width: width, baseStyle: baseStyle}
}

// Format renders message content into lines no wider than the formatter width.
func (mf *MessageFormatter) Format(content string) []StyledLine {
	var out []StyledLine

	inCode := false
	var codeLines []string
	var codeLang string

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") {
			if !inCode {
				inCode = true
				codeLang = strings.TrimPrefix(trimmed, "```")
				codeLines = nil
			} else {
				inCode = false
				out = append(out, mf.formatCode(codeLines, codeLang)...)
			}
			continue
		}

		if inCode {
			codeLines = append(codeLines, line)
			continue
		}

		switch {
		case trimmed == "":
			out = append(out, StyledLine{})
		case strings.HasPrefix(trimmed, "#"):
			text := strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
			out = append(out, mf.wrap(text, StyleHeader, 0)...)
		case strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* "):
			out = append(out, mf.wrap("• "+trimmed[2:], mf.baseStyle, 2)...)
		default:
			out = append(out, mf.wrap(line, mf.baseStyle, 0)...)
		}
	}

	// An unterminated fence still renders as code.
	if inCode {
		out = append(out, mf.formatCode(codeLines, codeLang)...)
	}

	return out
}

// wrap word-wraps text into styled lines at the formatter width.
func (mf *MessageFormatter) wrap(text string, style tcell.Style, indent int) []StyledLine {
	width := mf.width - indent
	if width < 10 {
		width = 10
	}

	var lines []StyledLine
	var current strings.Builder

	flush := func() {
		lines = append(lines, StyledLine{
			Spans:  []Span{{Text: current.String(), Style: style}},
			Indent: indent,
		})
		current.Reset()
	}

	for _, word := range strings.Fields(text) {
		wordLen := len([]rune(word))
		lineLen := len([]rune(current.String()))

		if lineLen > 0 && lineLen+1+wordLen > width {
			flush()
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(word)
	}

	if current.Len() > 0 || len(lines) == 0 {
		flush()
	}
	return lines
}

// formatCode highlights a fenced code block. Chroma tokens map straight onto
// tcell styles; no intermediate ANSI pass.
func (mf *MessageFormatter) formatCode(codeLines []string, lang string) []StyledLine {
	code := strings.Join(codeLines, "\n")

	var lexer chroma.Lexer
	if lang != "" {
		lexer = lexers.Get(lang)
	}
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		// Fall back to unstyled code lines.
		var out []StyledLine
		for _, line := range codeLines {
			out = append(out, StyledLine{Spans: []Span{{Text: line, Style: StyleDimText}}, Indent: 2})
		}
		return out
	}

	style := styles.Get("monokai")
	var out []StyledLine
	current := StyledLine{Indent: 2}

	for _, token := range iterator.Tokens() {
		entry := style.Get(token.Type)
		tokenStyle := StyleDefault
		if entry.Colour.IsSet() {
			tokenStyle = tokenStyle.Foreground(tcell.NewRGBColor(
				int32(entry.Colour.Red()),
				int32(entry.Colour.Green()),
				int32(entry.Colour.Blue()),
			))
		}
		if entry.Bold == chroma.Yes {
			tokenStyle = tokenStyle.Bold(true)
		}

		parts := strings.Split(token.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				out = append(out, current)
				current = StyledLine{Indent: 2}
			}
			if part != "" {
				current.Spans = append(current.Spans, Span{Text: part, Style: tokenStyle})
			}
		}
	}

	if len(current.Spans) > 0 {
		out = append(out, current)
	}
	return out
}
