package main

import "github.com/dzjyyds666/curlyconf/cmd"

func main() {
	cmd.Execute()
}
