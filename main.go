package main

import "github.com/AphilSantos/magic-portfolio/cmd"

func main() {
	cmd.Execute()
}
