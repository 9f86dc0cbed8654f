package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/JonnyWalker81/problemjson/pkg/apierror"
	"github.com/go-openapi/jsonpointer"
	"github.com/spf13/cobra"
)

// errFallback reports that the static fallback document was printed
var errFallback = errors.New("problem could not be encoded, printed the internal server error fallback")

type encodeOptions struct {
	problemType  string
	status       int
	title        string
	detail       string
	bodyErrors   []string
	headerErrors []string
	include      bool
}

func newEncodeCmd() *cobra.Command {
	opts := encodeOptions{}

	encodeCmd := &cobra.Command{
		Use:   "encode",
		Short: "Render a problem details document",
		Long: `Render an application/problem+json document from flags and print it.

Validation errors are given as key=detail pairs. For --body-error the key is
a JSON pointer into the request body; an empty key refers to the whole body.
For --header-error the key is the header name.`,
		Example: `  problemjson encode --type validation_error --status 400 --title "Bad Request" \
    --detail "Invalid input" --body-error /name="must be a string" \
    --header-error X-Api-Key="is required"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEncode(cmd.OutOrStdout(), opts)
		},
	}

	flags := encodeCmd.Flags()
	flags.StringVar(&opts.problemType, "type", apierror.TypeBadRequest, "Problem type identifier")
	flags.IntVar(&opts.status, "status", http.StatusBadRequest, "HTTP status code")
	flags.StringVar(&opts.title, "title", "", "Short summary (defaults to the status text)")
	flags.StringVar(&opts.detail, "detail", "", "Explanation of this occurrence")
	flags.StringArrayVar(&opts.bodyErrors, "body-error", nil, "Body validation error as pointer=detail (repeatable)")
	flags.StringArrayVar(&opts.headerErrors, "header-error", nil, "Header validation error as name=detail (repeatable)")
	flags.BoolVarP(&opts.include, "include", "i", false, "Print the status line and headers before the body")

	return encodeCmd
}

func runEncode(out io.Writer, opts encodeOptions) error {
	title := opts.title
	if title == "" {
		title = http.StatusText(opts.status)
	}
	p := apierror.New(opts.problemType, opts.status, title, opts.detail)

	errs, err := parseValidationErrors(opts.bodyErrors, opts.headerErrors)
	if err != nil {
		return err
	}

	var cause error
	onFallback := func(err error) { cause = err }

	var resp apierror.Response
	if errs.Len() > 0 {
		resp = apierror.EncodeWith(apierror.WithExtensions(p, errs), onFallback)
	} else {
		resp = apierror.EncodeWith(p, onFallback)
	}

	if opts.include {
		fmt.Fprintf(out, "HTTP/1.1 %d %s\r\n", resp.Status, http.StatusText(resp.Status))
		if err := resp.Header().Write(out); err != nil {
			return err
		}
		fmt.Fprint(out, "\r\n")
	}
	if _, err := out.Write(resp.Body); err != nil {
		return err
	}
	fmt.Fprintln(out)

	if cause != nil {
		return fmt.Errorf("%w: %v", errFallback, cause)
	}
	return nil
}

func parseValidationErrors(bodyErrors, headerErrors []string) (apierror.ValidationErrors, error) {
	var errs apierror.ValidationErrors

	for _, raw := range bodyErrors {
		pointer, detail, ok := strings.Cut(raw, "=")
		if !ok {
			return errs, fmt.Errorf("--body-error %q: want pointer=detail", raw)
		}
		if pointer == "" {
			errs.Add(detail, apierror.FromWholeBody())
			continue
		}
		if _, err := jsonpointer.New(pointer); err != nil {
			return errs, fmt.Errorf("--body-error %q: %w", raw, err)
		}
		errs.Add(detail, apierror.FromBody(pointer))
	}

	for _, raw := range headerErrors {
		name, detail, ok := strings.Cut(raw, "=")
		if !ok || name == "" {
			return errs, fmt.Errorf("--header-error %q: want name=detail", raw)
		}
		errs.Add(detail, apierror.FromHeader(name))
	}

	return errs, nil
}
