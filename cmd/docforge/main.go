package main

import "github.com/ebookpress/docforge/cmd/docforge/cmd"

func main() {
	cmd.Execute()
}
