package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/grovetools/kebabify/errors"
)

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
	Out     io.Writer
}

// NewErrorHandler creates a new error handler writing to stderr
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
		Out:     os.Stderr,
	}
}

// Handle prints a message for err based on its code and returns err
func (h *ErrorHandler) Handle(err error) error {
	if err == nil {
		return nil
	}
	kebabErr, _ := errors.As(err)

	switch errors.GetCode(err) {
	case errors.ErrCodeNotFound, errors.ErrCodeNotADirectory:
		fmt.Fprintf(h.Out, "❌ %s\n", kebabErr.Message)

	case errors.ErrCodeGitDirty:
		fmt.Fprintf(h.Out, "❌ %s\n", kebabErr.Message)
		if files, ok := kebabErr.Detail("dirtyFiles").([]string); ok {
			for _, f := range files {
				fmt.Fprintf(h.Out, "   %s\n", f)
			}
		}

	case errors.ErrCodeRenameConflict:
		fmt.Fprintf(h.Out, "❌ %s\n", kebabErr.Message)
		fmt.Fprintf(h.Out, "Rename one of the entries by hand and run again.\n")

	case errors.ErrCodeTempRenameStranded:
		fmt.Fprintf(h.Out, "❌ Rename interrupted halfway through a case-only rename.\n")
		fmt.Fprintf(h.Out, "   %v is still at %v\n", kebabErr.Detail("destination"), kebabErr.Detail("temporaryPath"))
		fmt.Fprintf(h.Out, "   Move it to its destination manually, then run again.\n")
		if cause, ok := errors.As(kebabErr.Cause); ok {
			h.printCommandOutput(cause)
		}

	case errors.ErrCodeCommandFailed:
		fmt.Fprintf(h.Out, "❌ %s\n", kebabErr.Message)
		h.printCommandOutput(kebabErr)
		fmt.Fprintf(h.Out, "Renames completed before the failure were kept.\n")

	case errors.ErrCodeConfigNotFound, errors.ErrCodeConfigInvalid:
		fmt.Fprintf(h.Out, "❌ %s\n", kebabErr.Message)
		if kebabErr.Cause != nil {
			fmt.Fprintf(h.Out, "%v\n", kebabErr.Cause)
		}

	default:
		fmt.Fprintf(h.Out, "❌ Error: %v\n", err)
	}

	if h.Verbose && kebabErr != nil {
		fmt.Fprintf(h.Out, "\nError details:\n%s\n", kebabErr.ToJSON())
	}
	return err
}

func (h *ErrorHandler) printCommandOutput(e *errors.KebabError) {
	if code := e.Detail("exitCode"); code != nil {
		fmt.Fprintf(h.Out, "   exit status: %v\n", code)
	}
	if sig := e.Detail("signal"); sig != nil {
		fmt.Fprintf(h.Out, "   signal: %v\n", sig)
	}
	if stderr, ok := e.Detail("stderr").(string); ok && stderr != "" {
		fmt.Fprintf(h.Out, "   %s\n", stderr)
	}
}
