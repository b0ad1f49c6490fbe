package main

import "gamescript-extractor/internal/cli"

func main() {
	cli.Execute()
}
