package main

import "runlog/internal/cli"

func main() {
	cli.Execute()
}
