package main

import "dibuild/cmd"

func main() {
	cmd.Execute()
}
