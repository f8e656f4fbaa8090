package main

import "github.com/julienpequegnot/feedlens/cmd"

func main() {
	cmd.Execute()
}
