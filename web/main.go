package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-sphere-tracer/pkg/scene"
	"github.com/df07/go-sphere-tracer/web/server"
)

func main() {
	port := flag.Int("port", 8080, "Port to serve on")
	scenesDir := flag.String("scenes", "../scenes", "Directory of .json scene files (run from web/)")
	flag.Parse()

	files, err := scene.ListJSONScenes(*scenesDir)
	if err != nil {
		log.Printf("Cannot read scenes from %s: %v", *scenesDir, err)
	}
	log.Printf("Sphere tracer: %d built-in scenes, %d scene files in %s",
		len(scene.BuiltInScenes()), len(files), *scenesDir)

	if err := server.NewServer(*port, *scenesDir).Start(); err != nil {
		log.Printf("Server stopped: %v", err)
		os.Exit(1)
	}
}
