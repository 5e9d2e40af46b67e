// Command cvpg runs the image transforms of go-cvpg from the command line.
package main

import (
	"os"
)

func main() {
	err := newRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}
