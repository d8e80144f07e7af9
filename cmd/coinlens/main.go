package main

import "coinlens/internal/cli"

func main() {
	cli.Execute()
}
