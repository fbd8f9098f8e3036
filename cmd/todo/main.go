// Command todo manages a todo list from the terminal.
package main

import "github.com/mesh-intelligence/todos/internal/cli"

func main() {
	cli.Execute()
}
