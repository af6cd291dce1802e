package main

import "github.com/picobox/picobox/cmd"

func main() {
	cmd.Execute()
}
