package main

import (
	"github.com/wordvote/wordvote/internal/cli"
)

func main() {
	cli.Execute()
}
