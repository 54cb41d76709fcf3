package main

import "keyout/cmd"

func main() {
	cmd.Execute()
}
