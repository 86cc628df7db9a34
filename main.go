package main

import "github.com/astralhq/polaris/cmd"

func main() {
	cmd.Execute()
}
