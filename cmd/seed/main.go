// Command main runs the database seeder for Inkwell.
package main

import (
	"flag"
	"log"

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/seed"
)

func main() {
	numAuthors := flag.Int("authors", 10, "Number of author accounts to create")
	numReaders := flag.Int("readers", 40, "Number of reader accounts to create")
	numPosts := flag.Int("posts", 200, "Number of posts to create")
	maxDays := flag.Int("max-days", 90, "Spread post creation dates over this many days")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	presetFile := flag.String("presets", "", "Path to a YAML preset file")
	presetName := flag.String("preset", "", "Apply a named preset from the preset file")
	flag.Parse()

	opts := seed.Options{
		NumAuthors:  *numAuthors,
		NumReaders:  *numReaders,
		NumPosts:    *numPosts,
		MaxDays:     *maxDays,
		ShouldClean: *shouldClean,
	}

	if *presetName != "" {
		if *presetFile == "" {
			log.Fatal("-preset requires -presets <file>")
		}
		presets, err := seed.LoadPresets(*presetFile)
		if err != nil {
			log.Fatalf("Failed to load presets: %v", err)
		}
		p, err := seed.FindPreset(presets, *presetName)
		if err != nil {
			log.Fatalf("%v", err)
		}
		log.Printf("Applying preset %q (ignoring count flags)", p.Name)
		opts = p.ToOptions()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.NewSeeder(db, opts).Run(); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done. Seed users share the password: Password1234")
}
