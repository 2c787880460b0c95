package main

import "foodtrack/internal/cli"

func main() {
	cli.Execute()
}
