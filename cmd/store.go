package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/orest-d/liquer-go/ast"
	"github.com/orest-d/liquer-go/metadata"
	"github.com/orest-d/liquer-go/store"
)

func init() {
	storeCommand := &cobra.Command{
		Use:   "store",
		Short: "Inspect or modify a file-backed store directly",
	}

	getCommand := &cobra.Command{
		Use:   "get <key>",
		Short: "Print the bytes stored under key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStoreGet(cmd.OutOrStdout(), args[0])
		},
	}

	setCommand := &cobra.Command{
		Use:   "set <key>",
		Short: "Write stdin's bytes to key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStoreSet(cmd.InOrStdin(), args[0])
		},
	}

	lsCommand := &cobra.Command{
		Use:   "ls [key]",
		Short: "List the entries directly under key (the store root if omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := ""
			if len(args) == 1 {
				key = args[0]
			}
			return runStoreLS(cmd.OutOrStdout(), key)
		},
	}

	storeCommand.AddCommand(getCommand, setCommand, lsCommand)
	RootCommand.AddCommand(storeCommand)
}

func openRootStore() (store.Store, error) {
	cfg, err := resolveConfig()
	if err != nil {
		return nil, err
	}
	if cfg.StoreRoot == "" {
		return nil, fmt.Errorf("store subcommands require --store-root (or LIQUER_STORE_ROOT) to be set")
	}
	return newStore(cfg.StoreRoot)
}

func runStoreGet(w io.Writer, keyText string) error {
	s, err := openRootStore()
	if err != nil {
		return err
	}
	bs, err := s.GetBytes(context.Background(), ast.ParseKey(keyText))
	if err != nil {
		return err
	}
	_, err = w.Write(bs)
	return err
}

func runStoreSet(r io.Reader, keyText string) error {
	s, err := openRootStore()
	if err != nil {
		return err
	}
	bs, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return s.Set(context.Background(), ast.ParseKey(keyText), bs, metadata.New())
}

func runStoreLS(w io.Writer, keyText string) error {
	s, err := openRootStore()
	if err != nil {
		return err
	}
	names, err := s.ListDir(context.Background(), ast.ParseKey(keyText))
	if err != nil {
		return err
	}
	fmt.Fprintln(w, strings.Join(names, "\n"))
	return nil
}
