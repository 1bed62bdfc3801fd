package main

import "docker-demo/internal/cli"

func main() {
	cli.Execute()
}
