package main

import (
	"fmt"
	"os"

	"github.com/Slach/debug-log-viewer/pkg/cli"
	"github.com/Slach/debug-log-viewer/pkg/logging"
	"github.com/Slach/debug-log-viewer/pkg/types"
)

var version = "dev"

func main() {
	logging.InitConsoleStdErrLog()
	cliInstance := &types.CLI{}
	rootCmd := cli.NewRootCommand(cliInstance, version)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
