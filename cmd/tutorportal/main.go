package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"

	"github.com/you/tutorportal/internal/app"
)

func main() {
	c, err := app.Start()
	if err != nil {
		log.Fatalf("app: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = newCommandLine(c, os.Stdin, os.Stdout).run(ctx, os.Args)
	stop()
	_ = c.Close()

	switch {
	case errors.Is(err, errHelp):
		os.Exit(2)
	case err != nil:
		log.Fatalf("tutorportal: %v", err)
	}
}
