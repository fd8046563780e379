// main is the entry point for the siteagent CLI.
package main

import (
	"github.com/huangsam/siteagent/cmd"
	"github.com/huangsam/siteagent/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("siteagent", err)
	}
}
