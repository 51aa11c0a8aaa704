package main

import "prompt_generator/cmd"

func main() {
	cmd.Execute()
}
