package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/iamasit07/connect4-minimax/internal/config"
	"github.com/iamasit07/connect4-minimax/internal/transport/console"
	"github.com/joho/godotenv"
)

func main() {
	noColor := flag.Bool("no-color", false, "disable ANSI colors")
	flag.Parse()

	godotenv.Load()
	cfg := config.LoadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	c := console.New(os.Stdin, os.Stdout, console.Options{
		Geometry:   cfg.Geometry,
		ThinkDelay: cfg.AIThinkDelay,
		Color:      !*noColor,
	})
	if err := c.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatalf("play: %v", err)
	}
}
