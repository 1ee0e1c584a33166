package main

import "github.com/hanline/hanline/cmd/hanline/cmd"

func main() {
	cmd.Execute()
}
