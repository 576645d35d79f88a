package extract

import (
	"regexp"
	"strings"

	"github.com/kitbuilder587/founder-finder/internal/domain"
)

const (
	NoProfilesMessage = "No LinkedIn profiles found."
	ProfilesHeader    = "Found the following LinkedIn profiles:\n\n"
)

// Entry - профиль до форматирования
type Entry struct {
	Name        string
	URL         string
	Description string
}

// FormatEntries renders entries in backend order, one "{name} - {url}" line each.
func FormatEntries(entries []Entry) string {
	if len(entries) == 0 {
		return NoProfilesMessage
	}

	var sb strings.Builder
	sb.WriteString(ProfilesHeader)
	for _, e := range entries {
		sb.WriteString(e.Name)
		sb.WriteString(" - ")
		sb.WriteString(e.URL)
		sb.WriteString("\n")
	}
	return sb.String()
}

var profileLine = regexp.MustCompile(`(` + wordClass + `+)\s*[\-|]\s*(https?://(?:www\.)?linkedin\.com/in/[\p{L}\p{N}_\-]+)`)

// ParseProfiles rebuilds {name, url} pairs from text produced by FormatEntries.
//
// The match is deliberately lossy: names are limited to word and space characters
// and URLs to linkedin.com/in/<slug> on the bare or www host. A name such as
// "John O'Neil" comes back as "Neil", a country subdomain URL (in.linkedin.com)
// does not match and its slug leaks into the next line's name, and a trailing
// slash or query string is cut off.
// Callers rely on this exact behavior; see DESIGN.md before changing it.
func ParseProfiles(text string) []domain.Profile {
	matches := profileLine.FindAllStringSubmatch(text, -1)
	profiles := make([]domain.Profile, 0, len(matches))
	for _, m := range matches {
		profiles = append(profiles, domain.Profile{
			Name:        strings.TrimSpace(m[1]),
			LinkedInURL: strings.TrimSpace(m[2]),
		})
	}
	return profiles
}
