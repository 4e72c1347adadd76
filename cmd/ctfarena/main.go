package main

import (
	"github.com/ctfarena/ctfarena/internal/cli"
)

func main() {
	cli.Execute()
}
