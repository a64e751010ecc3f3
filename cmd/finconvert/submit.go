package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cvanwyk/finconvert/internal/config"
	"github.com/cvanwyk/finconvert/internal/selection"
	"github.com/cvanwyk/finconvert/internal/upload"
	"github.com/cvanwyk/finconvert/internal/workbook"
)

var submitCmd = &cobra.Command{
	Use:   "submit [pdf files...]",
	Short: "Submit PDFs for conversion without the interactive form",
	Long: `Submit sends the given PDF files, the client name, and optional parser
instructions to the conversion backend in a single request, then saves the
consolidated Excel workbook next to you. Files are sent in the order given.`,
	RunE: runSubmit,
}

func init() {
	submitCmd.Flags().String("client", "", "client name used for the workbook filename")
	submitCmd.Flags().String("prompt", "", "extra instructions passed to the parser")

	rootCmd.AddCommand(submitCmd)
}

func runSubmit(cmd *cobra.Command, args []string) error {
	files := make([]selection.File, 0, len(args))
	for _, path := range args {
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("file not found: %s", path)
		}
		files = append(files, selection.File{Name: filepath.Base(path), Path: path})
	}

	clientName, _ := cmd.Flags().GetString("client")
	prompt, _ := cmd.Flags().GetString("prompt")

	cfg := config.Load(viper.GetViper())
	client := upload.New(cfg)

	req := upload.Request{ClientName: clientName, Prompt: prompt, Files: files}
	if err := req.Validate(); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "submitting %d file(s) to %s\n", len(files), cfg.Endpoint)

	res, err := client.Convert(cmd.Context(), req)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "saved: %s (%d bytes)\n", res.Path, res.Size)

	summary, err := workbook.Summarize(res.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not read the returned workbook: %v\n", err)
		return nil
	}
	fmt.Fprintln(os.Stdout, summary.String())
	return nil
}
