// reset-boards deletes every board of the configured store.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/itchan-dev/msgboard/backend/internal/setup"
	"github.com/itchan-dev/msgboard/shared/config"
	"github.com/itchan-dev/msgboard/shared/logger"
)

func main() {
	var configFolder string
	var confirm bool
	flag.StringVar(&configFolder, "config_folder", "backend/config", "path to folder with configs")
	flag.BoolVar(&confirm, "yes", false, "actually delete, without it the tool only prints what it would do")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	if !confirm {
		fmt.Printf("would delete every board in %s storage, rerun with -yes\n", cfg.Public.Storage)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	store, _, err := setup.OpenStorage(ctx, cfg)
	if err != nil {
		logger.Log.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer store.Close(ctx)

	n, err := store.DeleteAllBoards(ctx)
	if err != nil {
		logger.Log.Error("failed to delete boards", "error", err)
		os.Exit(1)
	}
	fmt.Printf("deleted %d boards\n", n)
}
