// Command flotech runs the Flotech report backend and its maintenance tasks.
package main

import (
	"context"
	"os"

	"github.com/Christosun/flotech-report-system/conf"
	"github.com/spf13/cobra"
)

// appRoot holds config/ and the relative data paths named there
var appRoot string

var rootCmd = &cobra.Command{
	Use:          "flotech",
	Short:        "Flotech engineering services backend",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&appRoot, "root", ".", "application root containing config/")
	rootCmd.AddCommand(serveCmd, initdbCmd, useraddCmd, renderCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// initCore runs BaseInit and returns the core with a cancel for the root context.
// Callers defer cancel and ResourceCleanUp.
func initCore(parent context.Context) (*conf.Core, context.CancelFunc, error) {
	ctx, cancel := context.WithCancel(parent)
	c := &conf.Core{}
	if err := c.BaseInit(appRoot, ctx, cancel); err != nil {
		cancel()
		return nil, nil, err
	}
	return c, cancel, nil
}
