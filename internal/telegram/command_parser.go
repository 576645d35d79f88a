package telegram

import (
	"errors"
	"strings"

	"github.com/kitbuilder587/founder-finder/internal/domain"
)

var ErrFindUsage = errors.New("usage: /find <domain> | <location> [| <role>]")

// ParseCommand splits "/cmd@bot args" into lowercased cmd and args.
// Plain text returns an empty command.
func ParseCommand(text string) (command, args string) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return "", text
	}

	parts := strings.SplitN(text, " ", 2)
	command = strings.ToLower(strings.TrimPrefix(parts[0], "/"))
	if i := strings.Index(command, "@"); i >= 0 {
		command = command[:i]
	}
	if len(parts) > 1 {
		args = strings.TrimSpace(parts[1])
	}
	return command, args
}

// ParseFindArgs разбирает "domain | location [| role]"
func ParseFindArgs(args string) (domain.SearchQuery, error) {
	parts := strings.Split(args, "|")
	if len(parts) < 2 || len(parts) > 3 {
		return domain.SearchQuery{}, ErrFindUsage
	}

	for i := range parts {
		parts[i] = normalizeSpaces(parts[i])
	}

	role := ""
	if len(parts) == 3 {
		role = parts[2]
	}

	q := domain.NewSearchQuery(parts[0], parts[1], role)
	if err := q.Validate(); err != nil {
		return domain.SearchQuery{}, err
	}
	return q, nil
}

func normalizeSpaces(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}
