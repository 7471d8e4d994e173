package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/authgate/internal/client/cli"
	"github.com/dmitrijs2005/authgate/internal/client/config"
	"github.com/dmitrijs2005/authgate/internal/flagx"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app := cli.NewApp(cfg)

	if err := app.Run(ctx, flagx.Positional(os.Args[1:], config.ValueFlags)); err != nil {
		log.Fatalf("%v", err)
	}

}
