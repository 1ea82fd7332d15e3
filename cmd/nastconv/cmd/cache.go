package cmd

import (
	"fmt"

	"nastconv/config"
	"nastconv/store"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/syndtr/goleveldb/leveldb"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manages the fixture cache.",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Removes every cached fixture.",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openCache(configuredHomeDir)
		if err != nil {
			return err
		}
		if db == nil {
			return errors.New("home directory is not initialized, run nastconv init first")
		}
		defer db.Close()

		count, err := store.CountFixtures(db)
		if err != nil {
			return err
		}
		err = store.WithTx(db, func(tx *leveldb.Transaction) error {
			return store.TruncateFixtures(tx)
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached fixtures from %s.\n", count, config.ExpandCachePath(configuredHomeDir))
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}
