package main

import cmd "github.com/kerbaras/shinsi/cmd/shinsi"

func main() {
	cmd.Execute()
}
