package cli

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/calumari/jdoc"
)

func newValidateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [FILE]...",
		Short: "Check that documents parse",
		RunE: func(cmd *cobra.Command, args []string) error {
			docs := a.parseAll(cmd.Context(), args)

			var invalid int
			var total uint64
			for _, doc := range docs {
				total += uint64(doc.size)
				fields := []zap.Field{
					zap.String("file", doc.path),
					zap.String("size", humanize.Bytes(uint64(doc.size))),
				}
				if doc.err != nil {
					invalid++
					var fe *jdoc.FormatError
					if errors.As(doc.err, &fe) {
						fields = append(fields, zap.Int64("offset", fe.Offset))
					}
					a.logger.Error("invalid", append(fields, zap.Error(doc.err))...)
					continue
				}
				a.logger.Info("valid", append(fields, zap.Stringer("kind", doc.member.Kind()))...)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d valid, %d invalid (%s)\n",
				len(docs)-invalid, invalid, humanize.Bytes(total))
			if invalid > 0 {
				return fmt.Errorf("%d of %d document(s) invalid", invalid, len(docs))
			}
			return nil
		},
	}
}
