package model

import (
	"strings"
	"testing"
)

func TestValidateUsername(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		username string
		wantMsgs int
	}{
		{"valid simple", "camper42", 0},
		{"valid underscores", "trail_mix_fan", 0},
		{"too short", "ab", 1},
		{"minimum length", "abc", 0},
		{"maximum length", strings.Repeat("a", 30), 0},
		{"too long", strings.Repeat("a", 31), 1},
		{"illegal characters", "bad name!", 1},
		{"empty is short only", "", 1},
		{"short and illegal", "a!", 2},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ValidateUsername(tt.username)
			if len(got) != tt.wantMsgs {
				t.Fatalf("ValidateUsername(%q) = %v, want %d messages", tt.username, got, tt.wantMsgs)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	if msgs := ValidatePassword("hunter2hunter2"); len(msgs) != 0 {
		t.Fatalf("expected no messages, got %v", msgs)
	}
	if msgs := ValidatePassword(""); len(msgs) != 1 {
		t.Fatalf("expected required message, got %v", msgs)
	}
	if msgs := ValidatePassword("short"); len(msgs) != 1 {
		t.Fatalf("expected length message, got %v", msgs)
	}
}

func TestValidateListing(t *testing.T) {
	t.Parallel()

	valid := Listing{
		Title:       "Misty Hollow",
		ImageURL:    "https://example.com/img.jpg",
		Price:       42,
		Rating:      4,
		ReviewCount: 10,
		Description: "Quiet riverside sites.",
		Location:    "Bend, OR",
	}
	if msgs := ValidateListing(valid); len(msgs) != 0 {
		t.Fatalf("expected valid listing, got %v", msgs)
	}

	tests := []struct {
		name   string
		mutate func(*Listing)
		want   string
	}{
		{"missing title", func(l *Listing) { l.Title = "" }, "title is required"},
		{"missing image", func(l *Listing) { l.ImageURL = "" }, "image is required"},
		{"missing description", func(l *Listing) { l.Description = "" }, "description is required"},
		{"missing location", func(l *Listing) { l.Location = "" }, "location is required"},
		{"negative price", func(l *Listing) { l.Price = -1 }, "price cannot be negative"},
		{"rating too low", func(l *Listing) { l.Rating = 0 }, "rating must be between 1 and 5"},
		{"rating too high", func(l *Listing) { l.Rating = 6 }, "rating must be between 1 and 5"},
		{"negative reviews", func(l *Listing) { l.ReviewCount = -1 }, "review count cannot be negative"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			l := valid
			tt.mutate(&l)
			msgs := ValidateListing(l)
			if len(msgs) != 1 || msgs[0] != tt.want {
				t.Fatalf("ValidateListing = %v, want [%q]", msgs, tt.want)
			}
		})
	}
}
