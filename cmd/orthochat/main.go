package main

import "github.com/dkoulouris/orthochat/internal/commands"

func main() {
	commands.Execute()
}
