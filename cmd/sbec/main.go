// Package main is the sbec CLI: a thin cobra shell around the schema
// parse/resolve/lower pipeline and the Emission Interface report (§6).
// It performs no code generation itself — that back end is out of scope
// (§1 Non-goals) — and exits 0 on success, -1 on any parse/resolve
// failure, matching the original tool's exit-code convention.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"sbec/internal/config"
	"sbec/internal/emit"
	"sbec/internal/schema"
)

type compileFlags struct {
	outputDir        string
	namespace        string
	headerType       string
	forcedVersion    uint64
	hasForcedVersion bool
	minRemoteVersion uint64
	ccTag            string
	sofhName         string
	format           string
	outFile          string
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "sbec",
		Short: "FIX SBE schema compiler",
	}

	rootCmd.AddCommand(compileCmd())
	rootCmd.AddCommand(validateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(-1)
	}
}

func compileCmd() *cobra.Command {
	flags := &compileFlags{}
	cmd := &cobra.Command{
		Use:   "compile <schema.xml>",
		Short: "Parse, resolve, and lower an SBE schema, printing its report",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runCompile(args[0], flags)
		},
	}
	bindCompileFlags(cmd, flags)
	return cmd
}

func validateCmd() *cobra.Command {
	flags := &compileFlags{format: string(emit.FormatSummary)}
	cmd := &cobra.Command{
		Use:   "validate <schema.xml>",
		Short: "Parse and resolve an SBE schema, reporting only diagnostics",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runValidate(args[0], flags)
		},
	}
	bindCompileFlags(cmd, flags)
	return cmd
}

func bindCompileFlags(cmd *cobra.Command, flags *compileFlags) {
	cmd.Flags().StringVarP(&flags.headerType, "header-type", "h", "", "Override the message-header composite type name")
	cmd.Flags().StringVarP(&flags.outputDir, "output", "o", "", "Output directory threaded through to the emission boundary")
	cmd.Flags().StringVarP(&flags.namespace, "namespace", "n", "", "Override the schema's package namespace")
	cmd.Flags().Uint64VarP(&flags.forcedVersion, "force-version", "V", 0, "Force the effective schema version below the document's declared version")
	cmd.Flags().Uint64VarP(&flags.minRemoteVersion, "min-remote-version", "m", 0, "Oldest wire version the generated code must still support")
	cmd.Flags().StringVar(&flags.ccTag, "cc-tag", "", "Override the conditional-compilation tag for optional members")
	cmd.Flags().StringVar(&flags.sofhName, "sofh-name", "", "Override the simple open framing header type name")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "Report format: human, json, or summary")
	cmd.Flags().StringVar(&flags.outFile, "report-output", "", "Write the report to a file instead of stdout")
}

func runCompile(path string, flags *compileFlags) error {
	db, err := parseSchemaFile(path, flags)
	if err != nil {
		return err
	}

	report := emit.BuildReport(db)
	formatter, err := emit.NewFormatter(flags.format)
	if err != nil {
		return err
	}
	formatted, err := formatter.Format(report)
	if err != nil {
		return fmt.Errorf("failed to format report: %w", err)
	}
	return writeReport(formatted, flags.outFile)
}

func runValidate(path string, flags *compileFlags) error {
	db, err := parseSchemaFile(path, flags)
	if err != nil {
		return err
	}
	if len(db.Diagnostics.Messages()) == 0 {
		fmt.Println("no diagnostics")
		return nil
	}
	db.Diagnostics.WriteTo(os.Stdout)
	return nil
}

func parseSchemaFile(path string, flags *compileFlags) (*schema.Database, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open schema: %w", err)
	}
	defer func() { _ = f.Close() }()

	opts := config.Options{
		OutputDir:             flags.outputDir,
		Namespace:             flags.namespace,
		HeaderType:            flags.headerType,
		ForcedVersion:         flags.forcedVersion,
		HasForcedVersion:      flags.hasForcedVersion || flags.forcedVersion > 0,
		MinRemoteVersion:      flags.minRemoteVersion,
		CCTag:                 flags.ccTag,
		OpenFramingHeaderName: flags.sofhName,
	}

	db, err := schema.ParseSchema(f, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema %q: %w", path, err)
	}
	return db, nil
}

func writeReport(content, outFile string) error {
	if outFile == "" {
		fmt.Print(content)
		return nil
	}
	if err := os.WriteFile(outFile, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	fmt.Fprintf(os.Stderr, "report saved to %s\n", strings.TrimSpace(outFile))
	return nil
}
