package main

import (
	"os"

	"github.com/scan-io-git/wmverify/cmd"
)

func main() {
	code := cmd.Execute()
	os.Exit(code)
}
