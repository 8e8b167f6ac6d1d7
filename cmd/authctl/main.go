package main

import "github.com/dmitrymomot/authkit/cmd/authctl/cmd"

func main() {
	cmd.Execute()
}
