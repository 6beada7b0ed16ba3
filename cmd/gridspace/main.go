package main

import (
	"github.com/gridspace-io/gridspace/internal/cli"
)

func main() {
	cli.Execute()
}
