package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/relief-next/internal/app"
)

func main() {
	mode := flag.String("mode", app.ModeAll, "run mode: all / api / worker")
	flag.Parse()

	if err := app.Run(app.Options{Mode: *mode}); err != nil {
		fmt.Fprintf(os.Stderr, "relief server exited: %v\n", err)
		os.Exit(1)
	}
}
