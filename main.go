package main

import (
	"github.com/leighmacdonald/steamtech/cmd"
)

func main() {
	cmd.Execute()
}
