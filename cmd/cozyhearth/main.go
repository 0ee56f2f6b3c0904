package main

import (
	"github.com/andrescamacho/cozyhearth-go/internal/adapters/cli"
)

func main() {
	cli.Execute()
}
