package main

import "fonoteca/cmd/fonoteca-cli/cmd"

func main() {
	cmd.Execute()
}
