package main

import "github.com/moffa90/go-uartaes/cmd/uartaes/cmd"

func main() {
	cmd.Execute()
}
