package listing

import (
	"contact-book/models"
	"strings"
	"unicode"
)

// Matches reports whether contact belongs in the results for query: a
// case-insensitive match on the name or an exact substring of the phone number.
// An empty query matches everything.
func Matches(query string, contact models.Contact) bool {
	if query == "" {
		return true
	}
	if indexFold(contact.Name, query) >= 0 {
		return true
	}
	return strings.Contains(contact.PhoneNumber, query)
}

// Filter keeps the contacts matching query, in input order, each with its name
// split for highlighting.
func Filter(query string, contacts []models.Contact) []models.ContactMatch {
	matches := make([]models.ContactMatch, 0, len(contacts))
	for _, c := range contacts {
		if !Matches(query, c) {
			continue
		}
		matches = append(matches, models.ContactMatch{
			Contact:   c,
			Highlight: Highlight(c.Name, query),
		})
	}
	return matches
}

// Search filters contacts by query and groups what is left by initial
func Search(query string, contacts []models.Contact) []models.ContactGroup {
	return group(Filter(query, contacts))
}

// Highlight splits name around the first case-insensitive occurrence of query.
// Without an occurrence the whole name is returned in Before.
func Highlight(name, query string) models.NameParts {
	if query == "" {
		return models.NameParts{Before: name}
	}

	start := indexFold(name, query)
	if start < 0 {
		return models.NameParts{Before: name}
	}

	nameRunes := []rune(name)
	end := start + len([]rune(query))

	return models.NameParts{
		Before: string(nameRunes[:start]),
		Match:  string(nameRunes[start:end]),
		After:  string(nameRunes[end:]),
	}
}

// indexFold returns the rune offset of the first case-insensitive occurrence
// of sub in s, or -1. Offsets are in runes so they stay valid for names whose
// lowercase form has a different byte length.
func indexFold(s, sub string) int {
	haystack := foldRunes(s)
	needle := foldRunes(sub)

	if len(needle) == 0 {
		return 0
	}

outer:
	for i := 0; i+len(needle) <= len(haystack); i++ {
		for j := range needle {
			if haystack[i+j] != needle[j] {
				continue outer
			}
		}
		return i
	}

	return -1
}

func foldRunes(s string) []rune {
	runes := []rune(s)
	for i, r := range runes {
		runes[i] = unicode.ToLower(r)
	}
	return runes
}
