package main

import "shop-transformer/cmd"

func main() {
	cmd.Execute()
}
