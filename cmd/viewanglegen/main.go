// Command viewanglegen writes ViewEntries methods and actor/action id
// constants for structs annotated with view tags.
//
//	viewanglegen --dir ./assets --type FrogSheets --out assets/frogsheets_view.go
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/milk9111/viewangle/internal/viewgen"
	"github.com/spf13/cobra"
)

var (
	dir      string
	typeName string
	out      string
)

var rootCmd = &cobra.Command{
	Use:   "viewanglegen",
	Short: "Generate view entries for an annotated asset struct",
	Long: `viewanglegen reads the view struct tags of a type and writes a Go file with
a ViewEntries method and constants for every symbolic actor and action name.`,
	Args: cobra.NoArgs,
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVar(&dir, "dir", ".", "package directory")
	rootCmd.Flags().StringVar(&typeName, "type", "", "annotated struct type")
	rootCmd.Flags().StringVar(&out, "out", "", "output file (default <dir>/<type>_view.go)")
	_ = rootCmd.MarkFlagRequired("type")
}

func run(cmd *cobra.Command, _ []string) error {
	pkg, err := viewgen.LoadPackage(dir)
	if err != nil {
		return err
	}
	c, err := viewgen.FromPackage(pkg, typeName)
	if err != nil {
		return err
	}
	src, err := viewgen.Generate(c)
	if err != nil {
		return err
	}

	if out == "" {
		out = filepath.Join(dir, strings.ToLower(typeName)+"_view.go")
	}
	if err := os.WriteFile(out, src, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d entries)\n", out, len(c.Fields))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
