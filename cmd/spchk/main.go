package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/ppiankov/spchk/internal/cli"
	"github.com/ppiankov/spchk/internal/pipeline"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cli.ExecuteContext(ctx)
	stop()

	if err != nil {
		// A dirty run has already reported everything it found
		if !errors.Is(err, pipeline.ErrNotClean) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
