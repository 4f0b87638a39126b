package main

import "github.com/hooksmith/hooksmith/cmd"

func main() {
	cmd.Execute()
}
