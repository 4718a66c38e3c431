package main

import (
	"context"
	"os"

	"github.com/endfield/endfield/pkg/cli"
)

func main() {
	os.Exit(cli.Run(context.Background()))
}
