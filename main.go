package main

import "github.com/strrl/stance/internal/cmd"

func main() {
	cmd.Execute()
}
