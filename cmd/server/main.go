package main

import "github.com/afrikoop/server/cmd/server/cmd"

func main() {
	cmd.Execute()
}
