package main

import "github.com/sirchsolutions/sirchweb/internal/cli"

func main() {
	cli.Execute()
}
