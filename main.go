package main

import "github.com/linesmerrill/avenue-police-api/cmd"

func main() {
	cmd.Execute()
}
