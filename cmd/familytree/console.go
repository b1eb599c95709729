package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"familytree/internal/domain/command"
	"familytree/internal/render"
	"familytree/internal/repository"
	familyUC "familytree/internal/usecase/family"
)

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Type commands and watch the tree grow",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, logger, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			uc := familyUC.NewFamilyUseCase(logger, repository.NewMemoryJournal())
			out := cmd.OutOrStdout()
			for _, line := range command.Help() {
				fmt.Fprintln(out, line)
			}
			return runConsole(commandContext(cmd), uc, cmd.InOrStdin(), out, true)
		},
	}
}

func newRunCmd() *cobra.Command {
	var pdfPath string

	cmd := &cobra.Command{
		Use:   "run <script>",
		Short: "Run a file of commands and print the resulting tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			script, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open script: %w", err)
			}
			defer script.Close()

			uc := familyUC.NewFamilyUseCase(logger, repository.NewMemoryJournal())
			out := cmd.OutOrStdout()
			if err := runConsole(commandContext(cmd), uc, script, out, false); err != nil {
				return err
			}
			if err := render.Text(out, uc.Snapshot()); err != nil {
				return err
			}
			if pdfPath != "" {
				return render.PDFFile(pdfPath, uc.Snapshot())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "also write the final tree to this PDF file")
	return cmd
}

// runConsole executes one command per input line. Blank lines and lines
// starting with # are skipped. In interactive mode the tree is redrawn after
// every applied mutation; query results are printed in both modes.
func runConsole(ctx context.Context, uc *familyUC.FamilyUseCase, in io.Reader, out io.Writer, interactive bool) error {
	scanner := bufio.NewScanner(in)
	prompt := func() {
		if interactive {
			fmt.Fprint(out, "> ")
		}
	}

	prompt()
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			prompt()
			continue
		}

		res := uc.Execute(ctx, line)
		if err := show(out, uc, res, interactive); err != nil {
			return err
		}
		prompt()
	}
	return scanner.Err()
}

func show(out io.Writer, uc *familyUC.FamilyUseCase, res familyUC.Result, interactive bool) error {
	if res.Dropped || res.Command == nil {
		return nil
	}
	switch res.Command.Kind {
	case command.KindAncestors:
		return render.List(out, "Ancestors of "+res.Command.Name, res.Names)
	case command.KindDescendants:
		return render.List(out, "Descendants of "+res.Command.Name, res.Names)
	default:
		if interactive {
			return render.Text(out, uc.Snapshot())
		}
		return nil
	}
}
