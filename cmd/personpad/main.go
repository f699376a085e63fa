package main

import "github.com/dbsmedya/personpad/cmd/personpad/cmd"

func main() {
	cmd.Execute()
}
