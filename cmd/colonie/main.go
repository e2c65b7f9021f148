package main

import (
	"github.com/franztrierweiler/colonie-ia-sub000/internal/adapters/cli"
)

func main() {
	cli.Execute()
}
