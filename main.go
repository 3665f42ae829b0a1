package main

import cmd "github.com/inference-gateway/gridpick/cmd"

func main() {
	cmd.Execute()
}
