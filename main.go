package main

import "github.com/K0NGR3SS/codesentry/commands"

func main() {
	commands.Execute()
}
