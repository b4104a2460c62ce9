package main

import (
	"flag"
	"log"
	"os"

	"cvcombine/internal/modelparams"
)

func main() {
	defs := flag.String("defs", "config/modelparams.yaml", "Path to model parameter definitions")
	flag.Parse()

	schema, err := modelparams.Load(*defs)
	if err != nil {
		log.Fatalf("Failed to load parameter definitions: %v", err)
	}

	if err := schema.WriteJSON(os.Stdout); err != nil {
		log.Fatalf("Failed to write schema: %v", err)
	}
}
