package main

import "vembed/cmd"

func main() {
	cmd.Execute()
}
