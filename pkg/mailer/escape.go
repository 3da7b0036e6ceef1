package mailer

import "strings"

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	`*`, `\*`,
	`_`, `\_`,
	`[`, `\[`,
	`]`, `\]`,
	`<`, `\<`,
	`>`, `\>`,
	`#`, `\#`,
	`~`, `\~`,
	`!`, `\!`,
	`|`, `\|`,
)

// EscapeMarkdown makes s render literally when placed in a markdown
// template. Lines that would start a list, a thematic break or a setext
// heading get their first character escaped. Templates call it as "md".
func EscapeMarkdown(s string) string {
	s = markdownEscaper.Replace(s)

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " ")
		if trimmed == "" {
			continue
		}
		switch trimmed[0] {
		case '-', '+', '=':
			lines[i] = line[:len(line)-len(trimmed)] + `\` + trimmed
		}
	}
	return strings.Join(lines, "\n")
}
