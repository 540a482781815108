// Command planner is the terminal front end of the school planner.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"school_planner_backend/internal/client"
	"school_planner_backend/internal/config"
	"school_planner_backend/internal/prefs"
	"school_planner_backend/pkg/logger"

	"github.com/joho/godotenv"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code so deferred cleanup runs before exit.
func run() int {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "reading .env: %v\n", err)
	}

	global := flag.NewFlagSet("planner", flag.ExitOnError)
	configDir := global.String("config", "configs", "directory holding config.yaml")
	global.Usage = printUsage
	global.Parse(os.Args[1:])

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return 1
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "warn"
	}
	cfg.Log.File = "logs/planner.log"
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	store, err := prefs.Open(cfg.Client.StatePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open %s: %v\n", cfg.Client.StatePath, err)
		return 1
	}
	defer store.Close()

	cache := client.NewCache()
	api := client.New(cfg.Client.BaseURL, store, cache, client.WithTimeout(cfg.Client.Timeout))

	cli := newCommandLine(api, store, os.Stdin, os.Stdout)
	args := append([]string{"planner"}, global.Args()...)
	if err := cli.run(context.Background(), args); err != nil {
		if !errors.Is(err, errHelp) {
			fmt.Fprintln(os.Stderr, err)
		}
		return 1
	}
	return 0
}

func printUsage() {
	fmt.Println(usage)
}
