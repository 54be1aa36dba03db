package main

import "notekeeper/cmd/notekeeper/cmd"

func main() {
	cmd.Execute()
}
