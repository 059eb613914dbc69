package notify

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Separator is drawn under the title of messages that carry fields
const Separator = "━━━━━━━━━━━━━━━━━━━━━━━"

var plainEscaper = strings.NewReplacer(`\`, `\\`, "_", `\_`, "*", `\*`, "`", "\\`", "[", `\[`)

// Render formats the message for Telegram's legacy Markdown parse mode
func (m Message) Render() string {
	var b strings.Builder

	title := cases.Title(language.English, cases.NoLower).String(m.Title)
	if m.Icon != "" {
		b.WriteString(m.Icon)
		b.WriteString(" ")
	}
	b.WriteString("*" + closeReopen(title, '*') + "*")

	if len(m.Fields) == 0 && len(m.Sections) == 0 && len(m.Footer) == 0 {
		return b.String()
	}

	b.WriteString("\n" + Separator)

	for _, f := range m.Fields {
		b.WriteString("\n" + renderField(f))
	}

	for _, s := range m.Sections {
		b.WriteString("\n")
		if s.Icon != "" {
			b.WriteString(s.Icon + " ")
		}
		b.WriteString(plainEscaper.Replace(s.Heading) + " :")
		for _, f := range s.Fields {
			b.WriteString("\n  • " + renderField(f))
		}
		b.WriteString("\n")
	}

	for _, f := range m.Footer {
		b.WriteString("\n" + renderField(f))
	}

	return b.String()
}

func renderField(f Field) string {
	var b strings.Builder
	if f.Icon != "" {
		b.WriteString(f.Icon + " ")
	}
	if f.Label != "" {
		b.WriteString(plainEscaper.Replace(f.Label) + " : ")
	}
	b.WriteString(styled(f.Value, f.Style))
	return b.String()
}

func styled(value string, style Style) string {
	switch style {
	case StyleCode:
		// Backticks cannot be escaped inside a code span
		return "`" + strings.ReplaceAll(value, "`", "'") + "`"
	case StyleBold:
		return "*" + closeReopen(value, '*') + "*"
	case StyleItalic:
		return "_" + closeReopen(value, '_') + "_"
	default:
		return plainEscaper.Replace(value)
	}
}

// closeReopen escapes the entity delimiter inside an entity by closing it,
// emitting an escaped delimiter, then reopening it.
func closeReopen(value string, delim rune) string {
	d := string(delim)
	return strings.ReplaceAll(value, d, d+`\`+d+d)
}
