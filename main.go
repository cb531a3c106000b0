package main

import "osv-diff/cmd"

func main() {
	cmd.Execute()
}
