package main

import "github.com/nathanhack/syndromedecoding/cmd"

func main() {
	cmd.Execute()
}
