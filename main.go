package main

import "github.com/jihoonly/matzip/cmd"

func main() {
	cmd.Execute()
}
