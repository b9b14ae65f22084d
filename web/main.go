package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/df07/go-weekend-raytracer/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	staticDir := flag.String("static", "", "Directory of static files to serve at / (optional)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Create and start web server
	webServer := server.NewServer(*port)
	webServer.StaticDir = *staticDir

	log.Printf("Weekend Raytracer Web Server")
	log.Printf("Visit http://localhost:%d/api/scenes to list scenes", *port)

	if err := webServer.Start(ctx); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
