package main

import "tripplanner/internal/cli"

func main() {
	cli.Execute()
}
