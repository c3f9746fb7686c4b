package main

import (
	"os"

	"github.com/victorstack-ai/wp-wowrevenue-authz-guard/cmd"
)

func main() {
	code := cmd.Execute()
	os.Exit(code)
}
