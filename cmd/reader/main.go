package main

import "kweezy.app/server/cmd/reader/command"

func main() {
	command.Execute()
}
