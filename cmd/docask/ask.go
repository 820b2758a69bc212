package main

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/kalambet/docask/internal/completion"
	"github.com/kalambet/docask/internal/config"
	"github.com/kalambet/docask/internal/extract"
)

var askCmd = &cobra.Command{
	Use:   "ask <pdf> <question...>",
	Short: "Ask a question about a PDF document",
	Long: `Ask a question about a PDF document.

Extracts the document's text, sends it with your question to the
configured model, and prints the answer.

Examples:
  docask ask report.pdf what does the summary section say
  docask ask ./scans/blood-panel.pdf "is anything out of range?"`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		path := args[0]
		question := strings.Join(args[1:], " ")

		printStep("Extracting text from %s...", path)
		text, err := extract.TextFromFile(path)
		if err != nil {
			return fmt.Errorf("extracting text: %w", err)
		}
		printStep("Extracted %d characters", utf8.RuneCountInString(text))

		client := completion.NewClient(cfg.Completion.APIKey, completion.Options{
			BaseURL: cfg.Completion.BaseURL,
			Model:   cfg.Completion.Model,
			Referer: cfg.Completion.Referer,
			Title:   cfg.Completion.Title,
		})

		printStep("Asking the model...")
		answer, err := client.Ask(cmd.Context(), text, question, completion.SystemPromptCLI)
		if err != nil {
			// A failed completion is still an answer of sorts. Print the
			// error text to stdout and exit cleanly, same as the HTTP
			// query endpoint.
			printWarning("completion failed")
			fmt.Fprintln(cmd.OutOrStdout(), completion.ErrorText(err))
			return nil
		}

		printSuccess("Answer received")
		fmt.Fprintln(cmd.OutOrStdout(), answer)
		return nil
	},
}
