package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	DefaultRole = "Founder"

	// ограничение поиска страницами профилей
	LinkedInSiteFilter = "site:linkedin.com/in"
)

// SearchQuery - тройка role/domain/location, из которой строится поисковый запрос
type SearchQuery struct {
	Role     string
	Domain   string
	Location string
}

func NewSearchQuery(domain, location, role string) SearchQuery {
	role = strings.TrimSpace(role)
	if role == "" {
		role = DefaultRole
	}
	return SearchQuery{
		Role:     role,
		Domain:   strings.TrimSpace(domain),
		Location: strings.TrimSpace(location),
	}
}

func (q SearchQuery) Validate() error {
	if q.Domain == "" {
		return ErrEmptyDomain
	}
	if q.Location == "" {
		return ErrEmptyLocation
	}
	return nil
}

// String возвращает строку для поисковика: "{role} {domain} {location} site:linkedin.com/in"
func (q SearchQuery) String() string {
	return fmt.Sprintf("%s %s %s %s", q.Role, q.Domain, q.Location, LinkedInSiteFilter)
}

// CacheKey - ключ кеша ответов: domain:location:role в нижнем регистре
func (q SearchQuery) CacheKey() string {
	return strings.ToLower(q.Domain) + ":" + strings.ToLower(q.Location) + ":" + strings.ToLower(q.Role)
}

type Profile struct {
	Name        string `json:"name"`
	LinkedInURL string `json:"linkedin_url"`
}

type FindResult struct {
	Profiles []Profile
	Query    string
	Provider string
	StoredAt time.Time
}
