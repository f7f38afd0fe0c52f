// Package listing turns a snapshot of contacts into what the contact list
// shows: alphabetic sections and search results with the matched part of
// each name marked. Nothing here touches storage.
package listing

import (
	"contact-book/models"
	"sort"
	"strings"
	"unicode"
)

// OtherKey collects names that do not start with a usable letter
const OtherKey = "#"

// SortByName returns a copy of contacts ordered by name, ignoring case.
// Contacts without a name go last.
func SortByName(contacts []models.Contact) []models.Contact {
	sorted := make([]models.Contact, len(contacts))
	copy(sorted, contacts)

	sort.SliceStable(sorted, func(i, j int) bool {
		return nameLess(sorted[i].Name, sorted[j].Name)
	})

	return sorted
}

// GroupKey returns the lowercase first letter of name, or OtherKey when the
// name is empty or starts with a digit.
func GroupKey(name string) string {
	for _, r := range name {
		if unicode.IsDigit(r) {
			return OtherKey
		}
		return string(unicode.ToLower(r))
	}
	return OtherKey
}

// GroupByInitial sorts contacts by name and splits them into sections keyed by
// GroupKey. Sections are in ascending key order with OtherKey always last.
func GroupByInitial(contacts []models.Contact) []models.ContactGroup {
	matches := make([]models.ContactMatch, 0, len(contacts))
	for _, c := range contacts {
		matches = append(matches, models.ContactMatch{
			Contact:   c,
			Highlight: models.NameParts{Before: c.Name},
		})
	}
	return group(matches)
}

func group(matches []models.ContactMatch) []models.ContactGroup {
	sorted := make([]models.ContactMatch, len(matches))
	copy(sorted, matches)
	sort.SliceStable(sorted, func(i, j int) bool {
		return nameLess(sorted[i].Name, sorted[j].Name)
	})

	buckets := make(map[string][]models.ContactMatch)
	keys := make([]string, 0)
	for _, m := range sorted {
		key := GroupKey(m.Name)
		if _, ok := buckets[key]; !ok {
			keys = append(keys, key)
		}
		buckets[key] = append(buckets[key], m)
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i] == OtherKey || keys[j] == OtherKey {
			return keys[j] == OtherKey && keys[i] != OtherKey
		}
		return keys[i] < keys[j]
	})

	groups := make([]models.ContactGroup, 0, len(keys))
	for _, key := range keys {
		groups = append(groups, models.ContactGroup{Key: key, Contacts: buckets[key]})
	}

	return groups
}

func nameLess(a, b string) bool {
	if a == "" || b == "" {
		return a != "" && b == ""
	}
	return strings.ToLower(a) < strings.ToLower(b)
}
