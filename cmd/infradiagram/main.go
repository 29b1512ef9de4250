package main

import "github.com/moviemate/infradiagram/cmd/infradiagram/commands"

func main() {
	commands.Execute()
}
