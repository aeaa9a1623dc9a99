// Package main is the entry point of plinter.
// It executes the root command defined in the cmd package.
package main

import "github.com/oshokin/plinter/cmd"

func main() {
	cmd.Execute()
}
