package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/rentcourt/ftpr/internal/pkg/documents"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ftprdocs",
		Short: "Render the blank court forms used by the FTPR portal",
	}
	rootCmd.AddCommand(listCmd(), renderCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, t := range documents.All() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-24s %s\n", t.Key, t.Title)
			}
			return nil
		},
	}
}

func renderCmd() *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "render [TEMPLATE...]",
		Short: "Write blank PDFs to the output directory (all templates when none are named)",
		RunE: func(cmd *cobra.Command, args []string) error {
			templates, err := selectTemplates(args)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("failed to create %s: %w", outDir, err)
			}
			for _, t := range templates {
				pdf, err := documents.Render(t, documents.Fields{})
				if err != nil {
					return fmt.Errorf("failed to render %s: %w", t.Key, err)
				}
				path := filepath.Join(outDir, t.Filename(""))
				if err := os.WriteFile(path, pdf, 0o644); err != nil {
					return fmt.Errorf("failed to write %s: %w", path, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s)\n", path, humanize.Bytes(uint64(len(pdf))))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
	return cmd
}

func selectTemplates(keys []string) ([]documents.Template, error) {
	if len(keys) == 0 {
		return documents.All(), nil
	}
	out := make([]documents.Template, 0, len(keys))
	for _, key := range keys {
		t, err := documents.Lookup(key)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
