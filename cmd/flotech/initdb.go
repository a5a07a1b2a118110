package main

import (
	"github.com/Christosun/flotech-report-system/stores"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var initdbCmd = &cobra.Command{
	Use:   "initdb",
	Short: "Create the tables missing from the configured SQL database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, cancel, err := initCore(cmd.Context())
		if err != nil {
			return err
		}
		defer cancel()
		defer c.ResourceCleanUp()

		if err = c.PrepareSQLDatabases(); err != nil {
			return err
		}
		client, stmts, err := c.SQLDBClient()
		if err != nil {
			return err
		}
		if err = stores.InitSchema(cmd.Context(), client, stmts); err != nil {
			return err
		}
		zap.L().Info("schema ready", zap.String("dbtype", client.GetConf().Type))
		return nil
	},
}
