package main

import (
	"github.com/pangenome/pafstats/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}
