package main

import "github.com/kordata/xlmatch/cmd"

func main() {
	cmd.Execute()
}
