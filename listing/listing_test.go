package listing

import (
	"contact-book/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contactsNamed(names ...string) []models.Contact {
	contacts := make([]models.Contact, 0, len(names))
	for i, name := range names {
		contacts = append(contacts, models.Contact{ID: int64(i + 1), Name: name})
	}
	return contacts
}

func groupNames(groups []models.ContactGroup) map[string][]string {
	out := make(map[string][]string, len(groups))
	for _, g := range groups {
		names := make([]string, 0, len(g.Contacts))
		for _, c := range g.Contacts {
			names = append(names, c.Name)
		}
		out[g.Key] = names
	}
	return out
}

func groupKeys(groups []models.ContactGroup) []string {
	keys := make([]string, 0, len(groups))
	for _, g := range groups {
		keys = append(keys, g.Key)
	}
	return keys
}

func TestGroupByInitial(t *testing.T) {
	tests := []struct {
		name       string
		input      []string
		wantKeys   []string
		wantGroups map[string][]string
	}{
		{
			name:     "Letters, digits and empty names",
			input:    []string{"bob", "Alice", "1dan", ""},
			wantKeys: []string{"a", "b", "#"},
			wantGroups: map[string][]string{
				"a": {"Alice"},
				"b": {"bob"},
				"#": {"1dan", ""},
			},
		},
		{
			name:     "Case-insensitive order within a group",
			input:    []string{"carl", "Cathy", "Caleb", "anna"},
			wantKeys: []string{"a", "c"},
			wantGroups: map[string][]string{
				"a": {"anna"},
				"c": {"Caleb", "carl", "Cathy"},
			},
		},
		{
			name:     "Only digits",
			input:    []string{"911", "411"},
			wantKeys: []string{"#"},
			wantGroups: map[string][]string{
				"#": {"411", "911"},
			},
		},
		{
			name:     "Non-ASCII letters get their own lowercase key",
			input:    []string{"Émile", "zack", "émilie"},
			wantKeys: []string{"z", "é"},
			wantGroups: map[string][]string{
				"z": {"zack"},
				"é": {"Émile", "émilie"},
			},
		},
		{
			name:       "Empty input",
			input:      nil,
			wantKeys:   []string{},
			wantGroups: map[string][]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groups := GroupByInitial(contactsNamed(tt.input...))

			assert.Equal(t, tt.wantKeys, groupKeys(groups))
			assert.Equal(t, tt.wantGroups, groupNames(groups))
		})
	}
}

func TestGroupByInitial_IsPure(t *testing.T) {
	input := contactsNamed("bob", "Alice", "1dan", "")
	snapshot := make([]models.Contact, len(input))
	copy(snapshot, input)

	first := GroupByInitial(input)
	second := GroupByInitial(input)

	assert.Equal(t, first, second)
	assert.Equal(t, snapshot, input, "input must not be reordered")
}

func TestGroupKey(t *testing.T) {
	tests := map[string]string{
		"":      "#",
		"7up":   "#",
		"Alice": "a",
		"alice": "a",
		"@home": "@",
		"Ölaf":  "ö",
	}

	for name, want := range tests {
		assert.Equal(t, want, GroupKey(name), "name %q", name)
	}
}

func TestSortByName(t *testing.T) {
	sorted := SortByName(contactsNamed("", "bob", "Alice", "1dan"))

	names := make([]string, 0, len(sorted))
	for _, c := range sorted {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"1dan", "Alice", "bob", ""}, names)
}

func TestFilter(t *testing.T) {
	people := contactsNamed("Alice", "Albert", "Bob")

	tests := []struct {
		name      string
		query     string
		contacts  []models.Contact
		wantNames []string
	}{
		{
			name:      "Name substring",
			query:     "al",
			contacts:  people,
			wantNames: []string{"Alice", "Albert"},
		},
		{
			name:      "Name match ignores case",
			query:     "BO",
			contacts:  people,
			wantNames: []string{"Bob"},
		},
		{
			name:      "Empty query keeps everyone",
			query:     "",
			contacts:  people,
			wantNames: []string{"Alice", "Albert", "Bob"},
		},
		{
			name:  "Phone substring",
			query: "99",
			contacts: []models.Contact{
				{ID: 1, Name: "Ann", PhoneNumber: "555-99-12"},
				{ID: 2, Name: "Ben", PhoneNumber: "555-00-00"},
			},
			wantNames: []string{"Ann"},
		},
		{
			name:  "Phone match is case-sensitive",
			query: "Ext",
			contacts: []models.Contact{
				{ID: 1, Name: "Office", PhoneNumber: "555-1234 ext 9"},
			},
			wantNames: []string{},
		},
		{
			name:      "No match",
			query:     "zz",
			contacts:  people,
			wantNames: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches := Filter(tt.query, tt.contacts)

			names := make([]string, 0, len(matches))
			for _, m := range matches {
				names = append(names, m.Name)
			}
			assert.Equal(t, tt.wantNames, names)
		})
	}
}

func TestHighlight(t *testing.T) {
	tests := []struct {
		name  string
		input string
		query string
		want  models.NameParts
	}{
		{
			name:  "Prefix match keeps original case",
			input: "Alice",
			query: "al",
			want:  models.NameParts{Before: "", Match: "Al", After: "ice"},
		},
		{
			name:  "First occurrence only",
			input: "Anna Banana",
			query: "an",
			want:  models.NameParts{Before: "", Match: "An", After: "na Banana"},
		},
		{
			name:  "Middle match",
			input: "Roberta",
			query: "BER",
			want:  models.NameParts{Before: "Ro", Match: "ber", After: "ta"},
		},
		{
			name:  "No occurrence returns whole name",
			input: "Bob",
			query: "555",
			want:  models.NameParts{Before: "Bob"},
		},
		{
			name:  "Empty query",
			input: "Bob",
			query: "",
			want:  models.NameParts{Before: "Bob"},
		},
		{
			name:  "Multibyte names",
			input: "Ölaf Örn",
			query: "ör",
			want:  models.NameParts{Before: "Ölaf ", Match: "Ör", After: "n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Highlight(tt.input, tt.query)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.input, got.Before+got.Match+got.After)
		})
	}
}

func TestSearch(t *testing.T) {
	contacts := []models.Contact{
		{ID: 1, Name: "Albert", PhoneNumber: "555-0001"},
		{ID: 2, Name: "bob", PhoneNumber: "555-0199"},
		{ID: 3, Name: "Alice", PhoneNumber: "555-0002"},
		{ID: 4, Name: "42nd Street Deli", PhoneNumber: "555-0042"},
	}

	groups := Search("al", contacts)
	require.Len(t, groups, 1)
	assert.Equal(t, "a", groups[0].Key)
	require.Len(t, groups[0].Contacts, 2)
	assert.Equal(t, "Albert", groups[0].Contacts[0].Name)
	assert.Equal(t, "Alice", groups[0].Contacts[1].Name)
	assert.Equal(t, "Al", groups[0].Contacts[1].Highlight.Match)

	groups = Search("01", contacts)
	assert.Equal(t, []string{"a", "b"}, groupKeys(groups))
	assert.Equal(t, models.NameParts{Before: "bob"}, groups[1].Contacts[0].Highlight)

	groups = Search("", contacts)
	assert.Equal(t, []string{"a", "b", "#"}, groupKeys(groups))
}
