package main

import "shopkeeper/cmd/client/cmd"

func main() {
	cmd.Execute()
}
