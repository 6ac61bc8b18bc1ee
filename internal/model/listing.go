package model

import "time"

// Listing represents a campground listing row from the `listings` table.
//
// Fields:
//  ID          – primary key identifier of the listing.
//  Title       – display title.
//  ImageURL    – reference to the listing's cover image.
//  Price       – nightly price, never negative.
//  Rating      – average rating between 1 and 5.
//  ReviewCount – number of reviews, never negative.
//  Description – free-form description text.
//  Location    – human readable location string.
//  AuthorID    – account that created the listing; nil for seeded rows
//                or when the author account was since removed.
//  CreatedAt   – timestamp of creation.
//  UpdatedAt   – timestamp of last update.
type Listing struct {
	ID          uint64    // listings.id
	Title       string    // listings.title
	ImageURL    string    // listings.image_url
	Price       float64   // listings.price
	Rating      float64   // listings.rating
	ReviewCount int       // listings.review_count
	Description string    // listings.description
	Location    string    // listings.location
	AuthorID    *uint64   // listings.author_id (nullable)
	CreatedAt   time.Time // listings.created_at
	UpdatedAt   time.Time // listings.updated_at
}

// ValidateListing checks the field rules for creating or updating a
// listing and returns one message per violated rule. Title, image,
// description and location are required; price and review count must
// not be negative; rating must fall within 1..5.
func ValidateListing(l Listing) []string {
	var msgs []string
	if l.Title == "" {
		msgs = append(msgs, "title is required")
	}
	if l.ImageURL == "" {
		msgs = append(msgs, "image is required")
	}
	if l.Description == "" {
		msgs = append(msgs, "description is required")
	}
	if l.Location == "" {
		msgs = append(msgs, "location is required")
	}
	if l.Price < 0 {
		msgs = append(msgs, "price cannot be negative")
	}
	if l.Rating < 1 || l.Rating > 5 {
		msgs = append(msgs, "rating must be between 1 and 5")
	}
	if l.ReviewCount < 0 {
		msgs = append(msgs, "review count cannot be negative")
	}
	return msgs
}
