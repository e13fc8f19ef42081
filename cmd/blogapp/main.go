// filepath: cmd/blogapp/main.go
package main

import (
	"blogapp/internal/cli"
)

func main() {
	// Delegate all execution to the CLI package
	cli.Execute()
}
