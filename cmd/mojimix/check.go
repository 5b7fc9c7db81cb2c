/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this package for license terms
 */
package main

import (
	"errors"
	"fmt"

	"github.com/mikeb26/mojimix/internal/keys"
	"github.com/spf13/cobra"
)

func newCheckCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check that a Gemini API key is configured",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := loadConfig(root)
			if err != nil {
				return err
			}
			_, source, err := store.Load()
			if err != nil {
				if errors.Is(err, keys.ErrNoKey) {
					return ErrNoAPIKey
				}
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "API key found (%v)\n",
				source)
			return err
		},
	}
}
