package main

import "nastconv/cmd/nastconv/cmd"

func main() {
	cmd.Execute()
}
