// chainrig links armature bones into damped track chains and tunes their
// influence. Scenes are YAML documents; see chainrig --help.
package main

import "github.com/ppiankov/chainrig/internal/cli"

func main() {
	cli.Execute()
}
