package main

import "github.com/KaramelBytes/pareto-cli/cmd"

func main() {
	cmd.Execute()
}
