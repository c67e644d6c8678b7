package main

import "stockbot/internal/cli"

func main() {
	cli.Execute()
}
