package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/weekly-events/api/internal/config"
	"github.com/weekly-events/api/internal/domain"
	"github.com/weekly-events/api/internal/infrastructure/dynamo"
	s3infra "github.com/weekly-events/api/internal/infrastructure/s3"
	"github.com/weekly-events/api/internal/pkg/id"
)

// seedEvent pairs an event template with the image file the -images flag may
// provide for it.
type seedEvent struct {
	event     domain.Event
	imageFile string
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	imagesDir := flag.String("images", "", "directory of event image files to upload to S3")
	flag.Parse()

	cfg := config.Load()
	ctx := context.Background()

	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(ctx, dynamoClient, cfg.DynamoTables)
	eventRepo := dynamo.NewEventRepo(dynamoClient, cfg.DynamoTables.Events)

	existing, err := eventRepo.Count(ctx)
	if err != nil {
		log.Fatalf("count events: %v", err)
	}
	if existing > 0 {
		log.Println("Events already exist. Skipping seed.")
		return
	}

	var imageStore *s3infra.Store
	if cfg.S3BucketName != "" {
		imageStore = s3infra.NewStore(s3infra.NewClient(cfg), cfg.S3BucketName, cfg.AWSRegion)
	}

	now := time.Now().UTC()
	for _, se := range seedEvents(now) {
		e := se.event
		e.EventID = id.New()
		e.CreatedAt = now
		e.UpdatedAt = now

		if imageStore != nil && *imagesDir != "" {
			if url, ok := uploadImage(ctx, imageStore, *imagesDir, se.imageFile, e.EventID); ok {
				e.Images = []string{url}
			}
		}

		if err := eventRepo.Put(ctx, &e); err != nil {
			log.Fatalf("seed event %q: %v", e.Title, err)
		}
		log.Printf("seeded event %q (capacity %d)", e.Title, e.Capacity)
	}
	log.Println("Seeded events.")
}

// uploadImage pushes one local image to S3 and returns its object URL.
// Missing files are skipped so partial image directories still work.
func uploadImage(ctx context.Context, store *s3infra.Store, dir, name, eventID string) (string, bool) {
	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		log.Printf("image %s not found, keeping hosted URL", name)
		return "", false
	}
	defer f.Close()

	url, err := store.Upload(ctx, fmt.Sprintf("events/%s/%s", eventID, name), f)
	if err != nil {
		log.Printf("upload %s: %v, keeping hosted URL", name, err)
		return "", false
	}
	return url, true
}

func seedEvents(now time.Time) []seedEvent {
	return []seedEvent{
		{
			imageFile: "sunrise-yoga.jpg",
			event: domain.Event{
				Title:       "Sunrise Yoga",
				Description: "Start your weekend with a calm outdoor yoga session.",
				Location:    "Central Park",
				Images: []string{
					"https://images.unsplash.com/photo-1506126613408-eca07ce68773?auto=format&fit=crop&w=1200&q=80",
				},
				StartAt:  now.AddDate(0, 0, 6),
				EndAt:    now.AddDate(0, 0, 6).Add(90 * time.Minute),
				Capacity: 25,
			},
		},
		{
			imageFile: "food-walk.jpg",
			event: domain.Event{
				Title:       "Weekend Food Walk",
				Description: "Explore local street food spots with a guided group.",
				Location:    "Old Town",
				Images: []string{
					"https://images.unsplash.com/photo-1504674900247-0877df9cc836?auto=format&fit=crop&w=1200&q=80",
				},
				StartAt:  now.AddDate(0, 0, 7),
				EndAt:    now.AddDate(0, 0, 7).Add(2 * time.Hour),
				Capacity: 30,
			},
		},
		{
			imageFile: "live-music.jpg",
			event: domain.Event{
				Title:       "Live Music Night",
				Description: "Chill with indie artists and acoustic sets.",
				Location:    "Riverfront Stage",
				Images: []string{
					"https://images.unsplash.com/photo-1470229722913-7c0e2dbbafd3?auto=format&fit=crop&w=1200&q=80",
				},
				StartAt:  now.AddDate(0, 0, 8),
				EndAt:    now.AddDate(0, 0, 8).Add(150 * time.Minute),
				Capacity: 80,
			},
		},
	}
}
