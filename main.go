package main

import (
	"os"

	"github.com/romnn/go-bumpversion/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
