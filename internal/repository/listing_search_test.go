package repository

import "testing"

func TestSortClause(t *testing.T) {
	t.Parallel()

	tests := []struct {
		sort string
		want string
	}{
		{"price_asc", "l.price ASC, l.id DESC"},
		{"price_desc", "l.price DESC, l.id DESC"},
		{"rating_asc", "l.rating ASC, l.id DESC"},
		{"rating_desc", "l.rating DESC, l.id DESC"},
		{"oldest", "l.id ASC"},
		{"newest", "l.id DESC"},
		{"", "l.id DESC"},
		{"bogus", "l.id DESC"},
		{"PRICE_ASC", "l.price ASC, l.id DESC"}, // keys are case-insensitive
	}
	for _, tt := range tests {
		if got := sortClause(tt.sort); got != tt.want {
			t.Errorf("sortClause(%q) = %q, want %q", tt.sort, got, tt.want)
		}
	}
}
