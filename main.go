package main

import "github.com/uiwalk/uiwalk/cmd"

func main() {
	cmd.Execute()
}
