package main

import "github.com/MichaelReichel/clock2doc/internal/cli"

func main() {
	cli.Execute()
}
