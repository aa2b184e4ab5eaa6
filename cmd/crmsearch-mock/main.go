package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"crmsearch/internal/backend"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults")
	}

	var (
		addr    = flag.String("addr", "", "Listen address (default :$PORT or :8080)")
		seed    = flag.String("seed", "", "JSON dataset file (default built-in sample)")
		token   = flag.String("token", os.Getenv("CRMSEARCH_TOKEN"), "Require this bearer token")
		latency = flag.Duration("latency", 0, "Delay every search response")
	)
	flag.Parse()

	if *addr == "" {
		port := os.Getenv("PORT")
		if port == "" {
			port = "8080"
		}
		*addr = ":" + port
	}

	data := backend.SampleDataset()
	if *seed != "" {
		var err error
		data, err = backend.LoadDataset(*seed)
		if err != nil {
			log.Fatal(err)
		}
	}

	srv := backend.NewServer(data, backend.Options{Token: *token, Latency: *latency})
	r := srv.SetupRouter()

	log.Printf("Starting mock CRM on %s (latency %s)", *addr, latency.Round(time.Millisecond))
	if err := r.Run(*addr); err != nil {
		log.Fatal(err)
	}
}
