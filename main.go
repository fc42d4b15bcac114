package main

import "domest/cmd"

func main() {
	cmd.Execute() // initialize cobra commands
}
