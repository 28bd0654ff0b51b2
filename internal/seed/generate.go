package seed

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/lightbnb/lightbnb/internal/domain"
)

// Options sizes a generated dataset.
type Options struct {
	Users        int
	Properties   int
	Reservations int
	// Seed makes generation deterministic; equal seeds yield equal datasets.
	Seed uint64
	// Now anchors reservation dates. Every generated reservation ends at
	// least two days before Now, so it counts as past in any time zone.
	Now time.Time
}

// Dataset is a consistent set of rows for every LightBnB table. Ids are
// assigned sequentially from 1 in each table.
type Dataset struct {
	Users        []domain.User
	Properties   []domain.Property
	Reservations []domain.Reservation
	Reviews      []domain.PropertyReview
}

type place struct {
	City     string
	Province string
	Country  string
}

var places = []place{
	{"Vancouver", "British Columbia", "Canada"},
	{"North Vancouver", "British Columbia", "Canada"},
	{"Victoria", "British Columbia", "Canada"},
	{"Calgary", "Alberta", "Canada"},
	{"Edmonton", "Alberta", "Canada"},
	{"Toronto", "Ontario", "Canada"},
	{"Ottawa", "Ontario", "Canada"},
	{"Montreal", "Quebec", "Canada"},
	{"Halifax", "Nova Scotia", "Canada"},
	{"Winnipeg", "Manitoba", "Canada"},
}

var (
	firstNames = []string{"Eva", "Devin", "Mariah", "Sue", "Etta", "Margaret", "Leroy", "Alice", "Owen", "Lena"}
	lastNames  = []string{"Stanley", "Sanders", "Jones", "Luna", "West", "Wong", "Hart", "Cobb", "Ramos", "Ito"}
	adjectives = []string{"Cozy", "Bright", "Quiet", "Modern", "Rustic", "Sunny", "Spacious", "Charming"}
	nouns      = []string{"loft", "cabin", "studio", "condo", "bungalow", "townhouse", "suite", "cottage"}
	streets    = []string{"Maple", "Harbour", "Cedar", "King", "Queen", "Birch", "Main", "Lakeshore"}
	messages   = []string{"Great stay.", "Would come back.", "A bit noisy at night.", "Exactly as pictured.", ""}
)

// Generate builds a dataset. Every user shares passwordHash. Each
// reservation gets one review; ratings fall in 1..5.
func Generate(opts Options, passwordHash string) *Dataset {
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	d := &Dataset{
		Users:        make([]domain.User, 0, opts.Users),
		Properties:   make([]domain.Property, 0, opts.Properties),
		Reservations: make([]domain.Reservation, 0, opts.Reservations),
		Reviews:      make([]domain.PropertyReview, 0, opts.Reservations),
	}

	for i := 1; i <= opts.Users; i++ {
		first, last := pick(rng, firstNames), pick(rng, lastNames)
		d.Users = append(d.Users, domain.User{
			ID:       int64(i),
			Name:     first + " " + last,
			Email:    fmt.Sprintf("%s.%s%d@example.com", strings.ToLower(first), strings.ToLower(last), i),
			Password: passwordHash,
		})
	}
	if opts.Users == 0 {
		return d
	}

	for i := 1; i <= opts.Properties; i++ {
		pl := pick(rng, places)
		title := pick(rng, adjectives) + " " + pick(rng, nouns)
		d.Properties = append(d.Properties, domain.Property{
			ID:                int64(i),
			OwnerID:           int64(1 + rng.IntN(opts.Users)),
			Title:             title,
			Description:       fmt.Sprintf("%s in %s.", title, pl.City),
			ThumbnailPhotoURL: fmt.Sprintf("https://images.example.com/properties/%d/thumb.jpg", i),
			CoverPhotoURL:     fmt.Sprintf("https://images.example.com/properties/%d/cover.jpg", i),
			CostPerNight:      int64(50 + rng.IntN(451)),
			ParkingSpaces:     rng.IntN(4),
			NumberOfBathrooms: 1 + rng.IntN(3),
			NumberOfBedrooms:  1 + rng.IntN(5),
			Country:           pl.Country,
			Street:            fmt.Sprintf("%d %s St", 1+rng.IntN(999), pick(rng, streets)),
			City:              pl.City,
			Province:          pl.Province,
			PostCode:          fmt.Sprintf("%c%d%c %d%c%d", 'A'+rune(rng.IntN(26)), rng.IntN(10), 'A'+rune(rng.IntN(26)), rng.IntN(10), 'A'+rune(rng.IntN(26)), rng.IntN(10)),
			Active:            true,
		})
	}
	if opts.Properties == 0 {
		return d
	}

	today := opts.Now.UTC().Truncate(24 * time.Hour)
	for i := 1; i <= opts.Reservations; i++ {
		end := today.AddDate(0, 0, -(2 + rng.IntN(730)))
		start := end.AddDate(0, 0, -(1 + rng.IntN(14)))
		r := domain.Reservation{
			ID:         int64(i),
			GuestID:    int64(1 + rng.IntN(opts.Users)),
			PropertyID: int64(1 + rng.IntN(opts.Properties)),
			StartDate:  start,
			EndDate:    end,
		}
		d.Reservations = append(d.Reservations, r)
		d.Reviews = append(d.Reviews, domain.PropertyReview{
			ID:            int64(i),
			GuestID:       r.GuestID,
			PropertyID:    r.PropertyID,
			ReservationID: r.ID,
			Rating:        1 + rng.IntN(5),
			Message:       pick(rng, messages),
		})
	}

	return d
}

func pick[T any](rng *rand.Rand, s []T) T {
	return s[rng.IntN(len(s))]
}
