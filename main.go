package main

import "community-events-backend/cmd"

func main() {
	cmd.Run()
}
