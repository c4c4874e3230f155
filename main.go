package main

import "github.com/avolkov/slack-lite/cmd/server"

func main() {
	server.NewServer().Run()
}
