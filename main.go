// Copyright © 2024 The Brook authors

package main

import "github.com/brooklang/brook/cmd"

func main() {
	cmd.Execute()
}
