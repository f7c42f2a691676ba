package main

import "github.com/toolchat/toolchat/cmd"

func main() {
	cmd.Execute()
}
