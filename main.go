package main

import "fiber-admin/cmd"

func main() {
	cmd.Execute()
}
