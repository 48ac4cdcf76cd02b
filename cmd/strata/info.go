package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/strataform/strata/attr"
	"github.com/strataform/strata/internal/cli/config"
)

func newInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the effective configuration and registered schema types",
		RunE:  runInfo,
	}
}

func runInfo(cmd *cobra.Command, args []string) error {
	labelColor := color.New(color.FgCyan)

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if cfg.ProjectName != "" {
		fmt.Printf("%s %s\n", labelColor.Sprint("Project:"), cfg.ProjectName)
	}
	fmt.Printf("%s %s\n", labelColor.Sprint("Model document:"), cfg.Model.Path)
	fmt.Printf("%s %s\n", labelColor.Sprint("Array store:"), cfg.Store.Path)
	fmt.Printf("%s %s\n", labelColor.Sprint("Log level:"), cfg.Log.Level)

	types := attr.List()
	if len(types) == 0 {
		fmt.Println("\nno schema types registered")
		return nil
	}

	fmt.Println()
	for _, name := range types {
		fmt.Printf("%s\n", labelColor.Sprint(name))
		for _, a := range attr.Lookup(name) {
			fmt.Printf("  %s\n", a.FieldKey())
		}
	}

	return nil
}
