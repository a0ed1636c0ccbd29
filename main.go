package main

import (
	"github.com/mkrivosik/atomization-scorer/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}
