package main

import (
	"flag"
	"fmt"
	"os"
	_ "time/tzdata"
	"wallfeed/internal/di"
	"wallfeed/internal/structures"
)

func main() {
	flags := &structures.CliFlags{}
	flag.StringVar(&flags.ConfigPath, "c", "config/config.yml", "path to the YAML config file")
	flag.BoolVar(&flags.DebugMode, "debug", false, "log to the console as well")
	flag.Parse()

	app, err := di.InitApp(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "wallfeed: %s\n", err)
		os.Exit(1)
	}
	if err := app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "wallfeed: %s\n", err)
		os.Exit(1)
	}
}
