package main

import "github.com/autobrr/rxrule/cmd"

func main() {
	cmd.Execute()
}
