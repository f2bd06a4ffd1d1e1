package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/samvad-hq/samvad-http/internal/config"
	"github.com/samvad-hq/samvad-http/internal/journal"
	"github.com/samvad-hq/samvad-http/internal/logger"
	"github.com/samvad-hq/samvad-http/pkg/httpclient"
	"github.com/samvad-hq/samvad-http/pkg/request"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	ExitSuccess    = 0
	ExitFailure    = 1
	ExitUsageError = 2
)

// usageError marks errors caused by invalid command-line input.
type usageError struct{ err error }

func (u usageError) Error() string { return u.err.Error() }
func (u usageError) Unwrap() error { return u.err }

func usagef(format string, args ...any) error {
	return usageError{err: fmt.Errorf(format, args...)}
}

// ExitCode maps an Execute error to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var u usageError
	if errors.As(err, &u) {
		return ExitUsageError
	}
	return ExitFailure
}

type requestFlags struct {
	method   string
	headers  []string
	query    []string
	data     string
	jsonBody string
	form     []string
	host     string
	path     string
	timeout  time.Duration
	output   string
	dryRun   bool
	record   bool
}

// NewRootCommand builds the samvad-http command tree.
func NewRootCommand(cfg *config.Config, sugar *zap.SugaredLogger) *cobra.Command {
	flags := &requestFlags{}

	root := &cobra.Command{
		Use:   "samvad-http [flags] URL",
		Short: "Send one HTTP request and print the decoded response",
		Long: `samvad-http sends a single HTTP or HTTPS request and prints the response.
JSON and XML bodies are decoded; any status other than 200 or 201 is a failure.

Examples:
  samvad-http https://api.example.com/items -q page=2
  samvad-http -X post https://api.example.com/items --json '{"name":"x"}'
  samvad-http -X put http://localhost:8080/login -f user=a -f pass=b`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return usagef("expected exactly one URL, got %d arguments", len(args))
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRequest(cmd, cfg, sugar, flags, args[0])
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err: err}
	})

	f := root.Flags()
	f.StringVarP(&flags.method, "method", "X", request.MethodGet, "HTTP method (case-insensitive)")
	f.StringArrayVarP(&flags.headers, "header", "H", nil, "request header as 'Name: value' (repeatable)")
	f.StringArrayVarP(&flags.query, "query", "q", nil, "query parameter as key=value (repeatable)")
	f.StringVarP(&flags.data, "data", "d", "", "raw request body")
	f.StringVar(&flags.jsonBody, "json", "", "JSON request body (validated and re-serialized)")
	f.StringArrayVarP(&flags.form, "form", "f", nil, "form field as key=value (repeatable, overrides any body)")
	f.StringVar(&flags.host, "host", "", "override the host taken from the URL")
	f.StringVar(&flags.path, "path", "", "override the request path taken from the URL")
	f.DurationVar(&flags.timeout, "timeout", cfg.RequestTimeout, "request timeout (0 for none)")
	f.StringVarP(&flags.output, "output", "o", cfg.OutputFormat, "output format: json or yaml")
	f.BoolVar(&flags.dryRun, "dry-run", false, "print the prepared request without sending it")
	f.BoolVar(&flags.record, "record", false, "save the exchange to the local journal")

	root.AddCommand(newHistoryCommand(cfg))
	return root
}

func runRequest(cmd *cobra.Command, cfg *config.Config, sugar *zap.SugaredLogger, flags *requestFlags, target string) error {
	format, err := outputFormat(flags.output)
	if err != nil {
		return err
	}
	opts, err := buildOptions(cfg, flags)
	if err != nil {
		return err
	}

	if flags.dryRun {
		prep, err := request.Prepare(target, opts)
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), format, preparedView(prep))
	}

	var restyLog resty.Logger
	if sugar != nil {
		restyLog = sugar
	}
	transport := httpclient.NewRestyClient(flags.timeout, restyLog)
	client := request.New(
		request.WithPlainTransport(transport),
		request.WithSecureTransport(transport),
		request.WithLogger(logger.NewZapLogger(sugar)),
	)

	resp, reqErr := client.Do(cmd.Context(), target, opts)
	if resp != nil {
		printStatus(cmd.ErrOrStderr(), resp)
		if err := render(cmd.OutOrStdout(), format, responseView(resp)); err != nil {
			reqErr = errors.Join(reqErr, err)
		}
	}

	if flags.record {
		if err := recordExchange(cfg, opts.Method, target, resp, reqErr); err != nil {
			reqErr = errors.Join(reqErr, err)
		}
	}
	return reqErr
}

func buildOptions(cfg *config.Config, flags *requestFlags) (request.Options, error) {
	headers, err := parseHeaders(flags.headers)
	if err != nil {
		return request.Options{}, err
	}
	if cfg.UserAgent != "" && !hasKeyFold(headers, "User-Agent") {
		headers["User-Agent"] = cfg.UserAgent
	}

	query, err := parsePairs("query", flags.query)
	if err != nil {
		return request.Options{}, err
	}
	form, err := parsePairs("form", flags.form)
	if err != nil {
		return request.Options{}, err
	}

	if flags.data != "" && flags.jsonBody != "" {
		return request.Options{}, usagef("--data and --json are mutually exclusive")
	}
	var body any
	switch {
	case flags.data != "":
		body = flags.data
	case flags.jsonBody != "":
		if err := json.Unmarshal([]byte(flags.jsonBody), &body); err != nil {
			return request.Options{}, usagef("invalid --json value: %v", err)
		}
	}

	return request.Options{
		Method:  flags.method,
		Headers: headers,
		Query:   query,
		Body:    body,
		Form:    form,
		Host:    flags.host,
		Path:    flags.path,
	}, nil
}

func parseHeaders(raw []string) (map[string]string, error) {
	headers := make(map[string]string, len(raw)+1)
	for _, h := range raw {
		name, value, ok := strings.Cut(h, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, usagef("invalid header %q (expected 'Name: value')", h)
		}
		headers[name] = strings.TrimSpace(value)
	}
	return headers, nil
}

func parsePairs(kind string, raw []string) (url.Values, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	values := make(url.Values, len(raw))
	for _, p := range raw {
		key, value, ok := strings.Cut(p, "=")
		if !ok || key == "" {
			return nil, usagef("invalid %s pair %q (expected key=value)", kind, p)
		}
		values.Add(key, value)
	}
	return values, nil
}

func hasKeyFold(m map[string]string, key string) bool {
	for k := range m {
		if strings.EqualFold(k, key) {
			return true
		}
	}
	return false
}

func recordExchange(cfg *config.Config, method, target string, resp *request.Response, reqErr error) error {
	store, err := journal.NewStore(cfg.JournalPath, journal.Options{
		TTL:             cfg.JournalTTL,
		CleanupInterval: cfg.JournalCleanupInterval,
	})
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}

	entry := journal.Entry{
		Method: strings.ToUpper(strings.TrimSpace(method)),
		URL:    target,
	}
	if entry.Method == "" {
		entry.Method = request.MethodGet
	}
	if resp != nil {
		entry.StatusCode = resp.StatusCode
		entry.ContentType = resp.ContentType()
	}
	if reqErr != nil {
		entry.Error = reqErr.Error()
	}

	recErr := store.Record(entry)
	if recErr != nil {
		recErr = fmt.Errorf("record exchange: %w", recErr)
	}
	return errors.Join(recErr, store.Close())
}
