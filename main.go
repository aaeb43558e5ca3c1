package main

import (
	"context"
	"os"

	"github.com/beehive/jxunxo/cli"
)

func main() {
	os.Exit(cli.Execute(context.Background()))
}
