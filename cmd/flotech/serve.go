package main

import (
	"github.com/Christosun/flotech-report-system/conf"
	"github.com/Christosun/flotech-report-system/handlers"
	"github.com/Christosun/flotech-report-system/sec"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON API and document downloads until SIGINT/SIGTERM",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	c, cancel, err := initCore(cmd.Context())
	if err != nil {
		return err
	}
	defer cancel()
	defer c.ResourceCleanUp()

	if err = c.PrepareSQLDatabases(); err != nil {
		return err
	}
	if err = c.PrepareKVDatabase(); err != nil {
		return err
	}
	if err = c.PrepareThrottleBucketStore(); err != nil {
		return err
	}
	api, err := newAPI(c)
	if err != nil {
		return err
	}
	c.PrepareWebService(api.Router())

	if err = c.StartServices(); err != nil {
		zap.L().Error("starting services", zap.Error(err))
		cancel()
		return err
	}
	zap.L().Info("flotech running", zap.String("addr", c.WebService.Addr()))
	return c.WaitServicesDone()
}

// newAPI wires the handlers to the prepared databases
func newAPI(c *conf.Core) (*handlers.API, error) {
	st, err := c.Stores()
	if err != nil {
		return nil, err
	}
	docs, err := c.Assembler()
	if err != nil {
		return nil, err
	}
	issuer, err := c.Issuer()
	if err != nil {
		return nil, err
	}
	api := &handlers.API{
		Stores:      st,
		Docs:        docs,
		Issuer:      issuer,
		Revocations: &sec.Revocations{KV: c.BackendKVDBClient, Prefix: c.AppName},
		Throttle:    c.ThrottleBucketStore,
	}
	if c.LoginLock.MaxFailures > 0 {
		api.LoginGuard = &sec.LoginGuard{
			KV:          c.BackendKVDBClient,
			Prefix:      c.AppName,
			MaxFailures: c.LoginLock.MaxFailures,
			Window:      c.LoginLock.Window(),
		}
	}
	return api, nil
}
