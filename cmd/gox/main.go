package main

import (
	"github.com/goxlang/gox/pkg/cli"
)

func main() {
	cli.Run()
}
