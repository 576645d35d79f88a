package telegram

import (
	"fmt"
	"html"
	"strings"

	"github.com/kitbuilder587/founder-finder/internal/domain"
)

const noProfilesText = "No LinkedIn profiles found."

func FormatProfiles(query string, profiles []domain.Profile) string {
	if len(profiles) == 0 {
		return noProfilesText
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("<b>Found %d LinkedIn profiles</b>\n", len(profiles)))
	if query != "" {
		sb.WriteString(fmt.Sprintf("<i>%s</i>\n", html.EscapeString(query)))
	}
	sb.WriteString("\n")

	for i, p := range profiles {
		name := p.Name
		if name == "" {
			name = truncateURL(p.LinkedInURL, 50)
		}
		sb.WriteString(fmt.Sprintf("%d. <a href=\"%s\">%s</a>\n",
			i+1,
			html.EscapeString(p.LinkedInURL),
			html.EscapeString(name),
		))
	}

	return sb.String()
}

func SplitMessage(text string, maxLen int) []string {
	if len(text) <= maxLen {
		return []string{text}
	}

	var messages []string
	for len(text) > 0 {
		if len(text) <= maxLen {
			messages = append(messages, text)
			break
		}

		splitPoint := findSafeSplitPoint(text, maxLen)
		if splitPoint <= 0 || splitPoint > len(text) {
			splitPoint = maxLen
		}

		messages = append(messages, text[:splitPoint])
		text = text[splitPoint:]
	}

	return messages
}

func findSafeSplitPoint(text string, maxLen int) int {
	// сначала перевод строки: одна ссылка на строку
	for i := maxLen - 1; i > maxLen/2; i-- {
		if i < len(text) && text[i] == '\n' && !isInsideHTMLTag(text, i) {
			return i + 1
		}
	}

	for i := maxLen - 1; i > maxLen/2; i-- {
		if i >= len(text) || isInsideHTMLTag(text, i) {
			continue
		}
		if text[i] == ' ' {
			return i + 1
		}
	}

	// внутри тега - ищем конец
	if maxLen < len(text) && isInsideHTMLTag(text, maxLen) {
		for i := maxLen; i < len(text); i++ {
			if text[i] == '>' {
				for j := i + 1; j < len(text) && j < i+50; j++ {
					if text[j] == '\n' || text[j] == ' ' {
						return j + 1
					}
				}
				return i + 1
			}
		}
	}

	for i := maxLen - 1; i > 0; i-- {
		if text[i] == ' ' || text[i] == '\n' {
			return i + 1
		}
	}

	return maxLen
}

func isInsideHTMLTag(text string, pos int) bool {
	if pos >= len(text) || pos < 0 {
		return false
	}
	for i := pos; i >= 0; i-- {
		if text[i] == '>' {
			return false
		}
		if text[i] == '<' {
			return true
		}
	}
	return false
}

func truncateURL(url string, maxLen int) string {
	if len(url) <= maxLen {
		return url
	}
	return url[:maxLen-3] + "..."
}
