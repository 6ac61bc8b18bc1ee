package main // Seeds the database with sample campground listings

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"

	"github.com/joho/godotenv"

	"github.com/findmycamp/api/internal/config"
	"github.com/findmycamp/api/internal/database"
	"github.com/findmycamp/api/internal/model"
	"github.com/findmycamp/api/internal/repository"
)

// Name fragments combined at random to produce plausible campground titles,
// mirroring the fixture data the public site ships with.
var descriptors = []string{
	"Forest", "Ancient", "Petrified", "Roaring", "Cascade", "Tumbling",
	"Silent", "Redwood", "Bullfrog", "Maple", "Misty", "Elk", "Grizzly",
	"Ocean", "Sky", "Dusty", "Diamond",
}

var places = []string{
	"Flats", "Village", "Canyon", "Pond", "Group Camp", "Horse Camp",
	"Ghost Town", "Camp", "Dispersed Camp", "Backcountry", "River",
	"Creek", "Creekside", "Bay", "Spring", "Bayshore", "Sands", "Mule Camp",
	"Hunting Camp", "Cliffs", "Hollow",
}

var locations = []string{
	"Yosemite, CA", "Moab, UT", "Bend, OR", "Asheville, NC", "Sedona, AZ",
	"Jackson, WY", "Estes Park, CO", "Lake Placid, NY", "Gatlinburg, TN",
	"Olympic Peninsula, WA",
}

const seedAuthor = "seeduser"

func main() {
	count := flag.Int("count", 50, "number of listings to insert")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	accounts := repository.NewAccountRepo(db)
	listings := repository.NewListingRepo(db)

	// All seeded listings belong to a dedicated account so they can be
	// managed (or wiped) through the normal author path.
	authorID, err := accounts.Create(ctx, seedAuthor, "seedpassword", cfg.BcryptCost)
	if errors.Is(err, repository.ErrUsernameExists) {
		acct, gerr := accounts.GetByUsername(ctx, seedAuthor)
		if gerr != nil {
			log.Fatalf("lookup seed account: %v", gerr)
		}
		authorID = acct.ID
	} else if err != nil {
		log.Fatalf("create seed account: %v", err)
	}

	for i := 0; i < *count; i++ {
		title := descriptors[rand.Intn(len(descriptors))] + " " + places[rand.Intn(len(places))]
		l := model.Listing{
			Title:       title,
			Location:    locations[rand.Intn(len(locations))],
			ImageURL:    fmt.Sprintf("https://picsum.photos/seed/%d/800/600", rand.Intn(100000)),
			Price:       float64(10 + rand.Intn(491)),
			Rating:      float64(1 + rand.Intn(5)),
			ReviewCount: rand.Intn(1000),
			Description: "A quiet spot with room for tents and a fire ring. " +
				"Potable water and pit toilets nearby.",
			AuthorID: &authorID,
		}
		if err := listings.Create(ctx, &l); err != nil {
			log.Fatalf("insert listing %q: %v", title, err)
		}
	}
	log.Printf("seeded %d listings (author %q)", *count, seedAuthor)
}
