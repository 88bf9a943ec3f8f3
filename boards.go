package main

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/example/radio-source-codec/internal/config"
	"github.com/example/radio-source-codec/pkg/board"
)

// loadRegistry builds the board registry from the built-in definitions and
// any found in cfg.DefinitionsDir. A missing directory only means no extra
// boards.
func loadRegistry(cfg *config.Config, logger *zap.Logger) (*board.Registry, error) {
	registry, err := board.NewRegistry(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load built-in boards: %w", err)
	}
	if cfg.DefinitionsDir != "" {
		if err := registry.LoadDir(cfg.DefinitionsDir); err != nil {
			return nil, fmt.Errorf("failed to load boards from %s: %w", cfg.DefinitionsDir, err)
		}
	}
	logger.Debug("boards available", zap.Strings("boards", registry.Names()))
	return registry, nil
}

// pickBoard returns the first non-empty name from candidates, in priority
// order, resolved through the registry.
func pickBoard(registry *board.Registry, candidates ...string) (*board.Board, error) {
	for _, name := range candidates {
		if name != "" {
			return registry.Get(name)
		}
	}
	return nil, fmt.Errorf("no board selected")
}

// printBoardList writes one line per registered board.
func printBoardList(w io.Writer, registry *board.Registry) error {
	for _, name := range registry.Names() {
		b, err := registry.Get(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%-10s %s\n", name, b.DisplayName())
	}
	return nil
}

// printBoardDetails writes the board summary followed by every capability
// and the persisted spelling of each input, switch and trim.
func printBoardDetails(w io.Writer, b *board.Board) {
	fmt.Fprintln(w, b.String())

	fmt.Fprintln(w, "\nCapabilities:")
	for _, c := range board.Capabilities() {
		fmt.Fprintf(w, "  %-30s %d\n", c, b.Capability(c))
	}

	fmt.Fprintln(w, "\nInputs:")
	for i, in := range b.Inputs() {
		kind := in.Type.String()
		if in.Type == board.InputFlex {
			kind += "/" + in.FlexType.String()
		}
		fmt.Fprintf(w, "  %2d. %-6s %-6s %s\n", i, b.InputYAMLName(i), in.Tag, kind)
	}

	fmt.Fprintln(w, "\nSwitches:")
	for i, sw := range b.Switches() {
		fmt.Fprintf(w, "  %2d. %-6s %s\n", i, sw.Tag, sw.Type)
	}

	fmt.Fprintln(w, "\nTrims:")
	for i := 0; i < b.Capability(board.NumTrims); i++ {
		fmt.Fprintf(w, "  %2d. %s\n", i, b.TrimYAMLName(i))
	}
}
