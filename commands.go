package main

import (
	"fmt"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/radio-source-codec/internal/httpapi"
	"github.com/example/radio-source-codec/pkg/formatver"
	"github.com/example/radio-source-codec/pkg/rawsource"
)

func (a *app) boardsCmd() *cobra.Command {
	boardsCmd := &cobra.Command{
		Use:   "boards",
		Short: "List the known boards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printBoardList(cmd.OutOrStdout(), a.registry)
		},
	}

	boardsCmd.AddCommand(&cobra.Command{
		Use:   "show NAME",
		Short: "Show a board's capabilities and persisted tags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.registry.Get(args[0])
			if err != nil {
				return err
			}
			printBoardDetails(cmd.OutOrStdout(), b)
			return nil
		},
	})
	return boardsCmd
}

func (a *app) encodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode KIND INDEX",
		Short: "Print the token for a source",
		Long: `Print the persisted token for a source of the given kind and index on the
selected board. Kinds are case-insensitive, e.g. Stick, Switch, Channel, Telemetry.

A negative index would be read as a flag; put "--" before the arguments:
  srcconv encode -- Channel -1`,
		Example: `  srcconv encode Stick 0
  srcconv --board t20 encode Switch 8
  srcconv encode -- Min -1`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := rawsource.ParseKind(args[0])
			if err != nil {
				return err
			}
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid index %q: %w", args[1], err)
			}

			b, err := pickBoard(a.registry, a.cfg.Board)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), rawsource.Encode(rawsource.Value{Kind: kind, Index: index}, b))
			return nil
		},
	}
}

func (a *app) decodeCmd() *cobra.Command {
	var semver string

	cmd := &cobra.Command{
		Use:   "decode TOKEN...",
		Short: "Decode one or more tokens",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version := formatver.CurrentVersion()
			if semver != "" {
				v, err := formatver.Parse(semver)
				if err != nil {
					return err
				}
				version = v
			}

			b, err := pickBoard(a.registry, a.cfg.Board)
			if err != nil {
				return err
			}

			codec := rawsource.NewCodec(b, version, rawsource.WithLogger(a.logger))
			values, err := rawsource.DecodeAll(cmd.Context(), codec, args, a.cfg.Workers)
			if err != nil {
				return err
			}
			for i, v := range values {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", args[i], v)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&semver, "semver", "", "Format version the tokens were written with (default: current)")
	return cmd
}

func (a *app) convertCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "convert FILE",
		Short: "Rewrite a document's source tokens in the current format",
		Long: `Read a model or radio settings document, decode every source field using the
document's own format version and write it back using the current spelling.
Unrecognised tokens are left as they are and listed in the report.

The board is taken from --board, then the document's "board" key, then the
configuration.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := LoadDocument(args[0])
			if err != nil {
				return err
			}
			if err := doc.Validate(); err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			b, err := pickBoard(a.registry, a.boardName, doc.Board, a.cfg.Board)
			if err != nil {
				return err
			}
			a.logger.Debug("converting document",
				zap.String("path", doc.Path),
				zap.String("board", b.Name()),
				zap.String("semver", doc.Semver))

			m := &Migrator{
				Codec:   rawsource.NewCodec(b, doc.Version, rawsource.WithLogger(a.logger)),
				Fields:  a.cfg.SourceFields,
				Workers: a.cfg.Workers,
				Logger:  a.logger,
			}
			report, err := m.Migrate(cmd.Context(), doc)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.ErrOrStderr(), report.String())

			if output != "" {
				return doc.WriteFile(output)
			}
			data, err := doc.Bytes()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the converted document here instead of stdout")
	return cmd
}

func (a *app) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the codec over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return httpapi.NewServer(a.registry, a.cfg, a.logger).ListenAndServe(ctx)
		},
	}
}
