package main

import "github.com/srgjo27/rail_ticket/internal/cli"

func main() {
	cli.Execute()
}
