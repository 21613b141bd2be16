package main

import "go-metronome/cmd"

func main() {
	cmd.Execute()
}
