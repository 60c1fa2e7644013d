package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage the recipe search index",
}

var indexBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the index, reusing it when already built",
	Long: `Builds the recipe search index. If a usable index already exists it
is reused without re-embedding; use "index rebuild" to force a fresh
build after the recipe collection changes.`,
	RunE: runIndexBuild,
}

var indexRebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Discard the index and build it from scratch",
	RunE:  runIndexRebuild,
}

var indexStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the index is ready and how many items it holds",
	RunE:  runIndexStatus,
}

func init() {
	indexCmd.AddCommand(indexBuildCmd)
	indexCmd.AddCommand(indexRebuildCmd)
	indexCmd.AddCommand(indexStatusCmd)
	rootCmd.AddCommand(indexCmd)
}

func runIndexBuild(cmd *cobra.Command, _ []string) error {
	index, err := getIndexService()
	if err != nil {
		return err
	}

	if err := index.LoadOrBuild(context.Background()); err != nil {
		return fmt.Errorf("building index: %w", err)
	}

	status, err := index.Status(context.Background())
	if err != nil {
		return fmt.Errorf("reading index status: %w", err)
	}
	cmd.Printf("Index ready: %d items\n", status.ItemCount)
	return nil
}

func runIndexRebuild(cmd *cobra.Command, _ []string) error {
	index, err := getIndexService()
	if err != nil {
		return err
	}

	if err := index.Rebuild(context.Background()); err != nil {
		return fmt.Errorf("rebuilding index: %w", err)
	}

	status, err := index.Status(context.Background())
	if err != nil {
		return fmt.Errorf("reading index status: %w", err)
	}
	cmd.Printf("Index rebuilt: %d items\n", status.ItemCount)
	return nil
}

func runIndexStatus(cmd *cobra.Command, _ []string) error {
	index, err := getIndexService()
	if err != nil {
		return err
	}

	status, err := index.Status(context.Background())
	if err != nil {
		return fmt.Errorf("reading index status: %w", err)
	}

	if status.Usable {
		cmd.Printf("Index is ready (%d items)\n", status.ItemCount)
	} else {
		cmd.Println("Index is empty. Run \"dietcoach index build\" or ask a question to build it.")
	}
	return nil
}
