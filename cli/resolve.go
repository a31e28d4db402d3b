package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"uriopen/buffer"
	"uriopen/uri"
)

var (
	resolveFile     string
	resolveLine     int
	resolveCol      int
	resolveDocument string
)

// RejectedError reports a token that did not resolve.
type RejectedError struct {
	Token   string
	Outcome uri.Outcome
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%q: %s", e.Token, e.Outcome)
}

var resolveCmd = &cobra.Command{
	Use:   "resolve [token]",
	Short: "Print the URI a token resolves to",
	Long: `Validates a token the way the viewer's context menu does and prints the
resulting URI followed by the rule that produced it.

With --file the token is extracted around --line and --col (both 1-based)
of that file, and the file is the document relative paths resolve against.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runResolve,
}

func init() {
	flags := resolveCmd.Flags()
	flags.StringVarP(&resolveFile, "file", "f", "", "extract the token from this file")
	flags.IntVarP(&resolveLine, "line", "l", 1, "line of the reference position")
	flags.IntVarP(&resolveCol, "col", "c", 1, "column of the reference position")
	flags.StringVarP(&resolveDocument, "document", "d", "", "location relative paths resolve against")
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	configureLogging("")
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	document := resolveDocument
	var token string
	switch {
	case resolveFile != "":
		if len(args) > 0 {
			return errors.New("pass either a token or --file, not both")
		}
		if resolveLine < 1 || resolveCol < 1 {
			return errors.New("--line and --col start at 1")
		}
		buf, err := buffer.NewBufferFromFile(resolveFile, cfg.TabSize)
		if err != nil {
			return err
		}
		if document == "" {
			document = buf.Location()
		}
		token, _, _ = uri.ExtractToken(buf, buffer.Cursor{Line: resolveLine - 1, Col: resolveCol - 1})
	case len(args) == 1:
		token = args[0]
	default:
		return errors.New("a token or --file is required")
	}

	res := uri.Validate(token, uri.Context{
		Schemes:    cfg.SchemeSet(),
		Document:   document,
		SearchPath: uri.SearchPathFromEnv(os.LookupEnv),
		IncludeDir: cfg.IncludeDir,
	})
	if !res.OK() {
		return &RejectedError{Token: token, Outcome: res.Outcome}
	}
	out := cmd.OutOrStdout()
	r := lipgloss.NewRenderer(out)
	fmt.Fprintf(out, "%s\t%s\n",
		r.NewStyle().Bold(true).Render(res.URI),
		r.NewStyle().Faint(true).Render(string(res.Method)))
	return nil
}
