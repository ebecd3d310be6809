package main

import "github.com/jsphweid/clarinetlint/cmd"

func main() {
	cmd.Execute()
}
