/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this package for license terms
 */
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mikeb26/mojimix/internal/config"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newConfigCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage mojimix configuration",
	}
	cmd.AddCommand(newConfigInitCmd(root))
	cmd.AddCommand(newConfigKeyCmd(root))
	cmd.AddCommand(newConfigShowCmd(root))

	return cmd
}

func newConfigInitCmd(root *rootOptions) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.WriteDefault(root.configPath, force)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %v\n", path)
			return err
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	return cmd
}

func newConfigKeyCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "key",
		Short: "Store the Gemini API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := loadConfig(root)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Enter your Gemini API key: ")
			key, err := readSecret(cmd.InOrStdin())
			fmt.Fprintln(out)
			if err != nil {
				return fmt.Errorf("Could not read API key: %w", err)
			}
			if err := store.Save(key); err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "saved to %v\n", store.Path())
			return err
		},
	}
}

// readSecret reads without echo when in is a terminal.
func readSecret(in io.Reader) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		data, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(data)), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func newConfigShowCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, err := loadConfig(root)
			if err != nil {
				return err
			}
			text, err := config.Marshal(cfg)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, text)
			if _, source, err := store.Load(); err == nil {
				fmt.Fprintf(out, "api_key: set (%v)\n", source)
			} else {
				fmt.Fprintf(out, "api_key: not set\n")
			}
			return nil
		},
	}
}
