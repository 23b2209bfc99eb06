package main

import "layerplot/internal/cli"

func main() {
	cli.Execute()
}
