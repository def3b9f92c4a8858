package main

import "github.com/andrescamacho/voyageplanner-go/internal/adapters/cli"

func main() {
	cli.Execute()
}
