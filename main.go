package main

import (
	"github.td.teradata.com/sandbox/jot/internal/cmd"
	"os"
)

func main() {
	os.Exit(cmd.Execute())
}
