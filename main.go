package main

import "github.com/LegacyCodeHQ/datadag/cmd"

func main() {
	cmd.Execute()
}
