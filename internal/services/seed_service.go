// filepath: internal/services/seed_service.go
package services

import (
	"fmt"

	"blogapp/internal/logging"
)

// samplePost is one unit of static seed data.
type samplePost struct {
	Title   string
	Content string
	Tags    []string
}

// samplePosts is the fixed pool the seeder draws from, in insertion order.
var samplePosts = []samplePost{
	{
		Title:   "Hiking above the fjord",
		Content: "We left before sunrise and reached the ridge by nine. The water below was perfectly still, a mirror for the whole valley.\n\nBring more water than you think you need.",
		Tags:    []string{"travel", "norway", "hiking"},
	},
	{
		Title:   "Sourdough, third attempt",
		Content: "The crumb is finally open. The trick was a longer autolyse and not rushing the second proof.\n\nNext time: less flour on the banneton.",
		Tags:    []string{"baking"},
	},
	{
		Title:   "Notes on reading slowly",
		Content: "I started keeping a margin notebook this month. Ten pages a day, but every page annotated. It changes what sticks.",
		Tags:    []string{"books", "habits"},
	},
	{
		Title:   "A week without a phone",
		Content: "Day one was restless. Day three was quiet. By day seven I had read two books and fixed the kitchen shelf that leaned since spring.",
		Tags:    []string{"habits"},
	},
	{
		Title:   "Winter light in the north",
		Content: "Two hours of daylight, and all of it golden. Photographers call it the long blue hour; locals call it Tuesday.",
		Tags:    []string{"travel", "norway", "photography"},
	},
	{
		Title:   "The garden in September",
		Content: "Tomatoes are done, kale is thriving, and something has been eating the chard. Suspect: the neighbour's rabbit.",
		Tags:    []string{"garden"},
	},
	{
		Title:   "On keeping a changelog for yourself",
		Content: "A weekly note of what changed: tools, habits, opinions. Six months in, the record is more honest than memory ever was.",
		Tags:    []string{"habits", "writing"},
	},
	{
		Title:   "Coffee gear I actually use",
		Content: "After years of accumulation: a burr grinder, a scale, and a plain V60. Everything else is shelf decoration.",
		Tags:    []string{"coffee"},
	},
}

// SeedService inserts sample posts for local development and demos.
type SeedService struct {
	posts *PostService
}

// NewSeedService creates a new SeedService.
func NewSeedService(posts *PostService) *SeedService {
	return &SeedService{posts: posts}
}

// AvailableSamples reports how many sample posts can be seeded.
func AvailableSamples() int {
	return len(samplePosts)
}

// Seed inserts up to n sample posts with their tags and returns the number
// actually inserted. Asking for more than the static pool holds is clamped
// with a warning, not an error.
func (s *SeedService) Seed(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("post count must be positive, got %d", n)
	}
	if n > len(samplePosts) {
		logging.Log.Warnf("Requested %d posts but only %d samples are available; seeding %d.",
			n, len(samplePosts), len(samplePosts))
		n = len(samplePosts)
	}

	inserted := 0
	for _, sample := range samplePosts[:n] {
		id := s.posts.CreatePost(sample.Title, sample.Content, nil, sample.Tags)
		if id == 0 {
			return inserted, fmt.Errorf("failed to seed post %q", sample.Title)
		}
		inserted++
	}

	logging.Log.Infof("Seeded %d sample posts.", inserted)
	return inserted, nil
}
