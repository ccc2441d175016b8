package main

import "envstart/cmd"

func main() {
	cmd.Execute()
}
