package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/calumari/jdoc"
	"github.com/calumari/jdoc/internal/yamlconv"
)

func newFromYAMLCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "from-yaml [FILE]",
		Short: "Convert a YAML document to canonical JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = a.stdin
			name := stdinName
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				r, name = f, args[0]
			}

			m, err := yamlconv.Decode(r)
			if err != nil {
				return fmt.Errorf("convert %s: %w", name, err)
			}
			a.logger.Debug("converted", zap.String("file", name), zap.Stringer("kind", m.Kind()))
			_, err = fmt.Fprintln(cmd.OutOrStdout(), jdoc.Serialize(m))
			return err
		},
	}
}
