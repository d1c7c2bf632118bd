package main

import "codechat/internal/cli"

func main() {
	cli.Execute()
}
