package main

import "github.com/nutrigrade/nutrigrade/cmd"

func main() {
	cmd.Execute()
}
