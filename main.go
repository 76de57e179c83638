package main

import "github.com/lilcord/lilbot/cmd"

func main() {
	cmd.Execute()
}
