package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/calumari/jdoc"
)

func newFmtCommand(a *app) *cobra.Command {
	var write bool
	cmd := &cobra.Command{
		Use:   "fmt [FILE]...",
		Short: "Print documents in canonical form",
		RunE: func(cmd *cobra.Command, args []string) error {
			if write && len(args) == 0 {
				return errors.New("cannot use --write when reading from stdin")
			}

			var failed int
			for _, doc := range a.parseAll(cmd.Context(), args) {
				if doc.err != nil {
					a.logger.Error("parse failed", zap.String("file", doc.path), zap.Error(doc.err))
					failed++
					continue
				}
				out := jdoc.Serialize(doc.member)
				if !write {
					if _, err := fmt.Fprintln(cmd.OutOrStdout(), out); err != nil {
						return err
					}
					continue
				}
				if err := writeFile(doc.path, []byte(out+"\n")); err != nil {
					a.logger.Error("write failed", zap.String("file", doc.path), zap.Error(err))
					failed++
					continue
				}
				a.logger.Info("formatted", zap.String("file", doc.path))
			}
			if failed > 0 {
				return fmt.Errorf("%d document(s) could not be formatted", failed)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, "Rewrite files in place instead of printing them")
	return cmd
}
