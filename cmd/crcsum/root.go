package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/hupe1980/crcgo"
	"github.com/hupe1980/crcgo/blobstore"
	"github.com/hupe1980/crcgo/compress"
	"github.com/hupe1980/crcgo/internal/conv"
	"github.com/hupe1980/crcgo/manifest"
)

const (
	cliName        = "crcsum"
	cliDescription = "Print or check CRC-32 (IEEE) checksums."
)

var errMismatch = errors.New("checksum verification failed")

// config holds the parsed command line.
type config struct {
	store       string
	check       string
	save        string
	output      string
	decompress  bool
	concurrency int
	partSize    string
	ioLimit     string
	verbose     bool
	logFormat   string

	format        manifest.Format
	partSizeBytes int64
	ioLimitBytes  int64
}

func (c *config) validate() error {
	f, err := manifest.ParseFormat(c.output)
	if err != nil {
		return err
	}
	c.format = f

	if c.logFormat != "text" && c.logFormat != "json" {
		return fmt.Errorf("invalid --log-format %q (want text or json)", c.logFormat)
	}
	if c.concurrency < 0 {
		return fmt.Errorf("invalid --concurrency %d", c.concurrency)
	}

	if c.partSizeBytes, err = parseBytes(c.partSize); err != nil || c.partSizeBytes == 0 {
		return fmt.Errorf("invalid --part-size %q", c.partSize)
	}
	if c.ioLimit != "" {
		if c.ioLimitBytes, err = parseBytes(c.ioLimit); err != nil {
			return fmt.Errorf("invalid --io-limit %q", c.ioLimit)
		}
	}

	if c.check != "" && c.save != "" {
		return errors.New("--check and --save are mutually exclusive")
	}
	return nil
}

// parseBytes parses sizes such as "8MiB", "100 MB" or "4096".
func parseBytes(s string) (int64, error) {
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, err
	}
	return conv.Uint64ToInt64(n)
}

func (c *config) logger(stderr io.Writer) *crcgo.Logger {
	level := slog.LevelWarn
	if c.verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.logFormat == "json" {
		return crcgo.NewLogger(slog.NewJSONHandler(stderr, opts))
	}
	return crcgo.NewLogger(slog.NewTextHandler(stderr, opts))
}

func (c *config) summerOptions(stderr io.Writer) []crcgo.Option {
	return []crcgo.Option{
		crcgo.WithLogger(c.logger(stderr)),
		crcgo.WithConcurrency(c.concurrency),
		crcgo.WithPartSize(c.partSizeBytes),
		crcgo.WithIOLimit(c.ioLimitBytes),
		crcgo.WithDecompression(c.decompress),
	}
}

func newRootCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	cfg := &config{}

	cmd := &cobra.Command{
		Use:   cliName + " [name...]",
		Short: cliDescription,
		Long: `Print or check CRC-32 (IEEE) checksums.

With no names and no --store, standard input is read and its checksum is
printed as eight lowercase hex digits. Names are file paths, or blob names
relative to --store. With --store and no names, every blob under the store
prefix is checksummed, except manifests named CRC32SUMS or by --save. A
--check manifest that is not a local file is loaded from --store.

Stores:
  s3://bucket/prefix                 Amazon S3 (default AWS credential chain)
  minio://endpoint/bucket/prefix     MinIO over TLS (MINIO_ACCESS_KEY, MINIO_SECRET_KEY)
  minio+http://endpoint/bucket/...   MinIO without TLS
  <directory>                        local directory`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(_ *cobra.Command, _ []string) error {
			return cfg.validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cfg, args, stdin, stdout, stderr)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.store, "store", "", "blob store to read from (s3://, minio://, or a directory)")
	flags.StringVarP(&cfg.check, "check", "c", "", "verify checksums from a manifest file, a blob in --store, or - for stdin")
	flags.StringVar(&cfg.save, "save", "", "also write the manifest into the store under this name")
	flags.StringVarP(&cfg.output, "output", "o", "text", "output format (text, json)")
	flags.BoolVarP(&cfg.decompress, "decompress", "d", false, "checksum the decoded content of gzip, zstd and lz4 data")
	flags.IntVarP(&cfg.concurrency, "concurrency", "j", 0, "number of blobs and parts hashed in parallel (default: GOMAXPROCS)")
	flags.StringVar(&cfg.partSize, "part-size", humanize.IBytes(uint64(crcgo.DefaultPartSize)), "split blobs larger than this into parallel parts")
	flags.StringVar(&cfg.ioLimit, "io-limit", "0", "maximum read throughput per second, e.g. 100MiB (0: unlimited)")
	flags.BoolVarP(&cfg.verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&cfg.logFormat, "log-format", "text", "log format (text, json)")

	formats := func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "json"}, cobra.ShellCompDirectiveDefault
	}
	for _, name := range []string{"output", "log-format"} {
		// Only fails for unknown flags or duplicate registration.
		cobra.CheckErr(cmd.RegisterFlagCompletionFunc(name, formats))
	}

	return cmd
}

func run(ctx context.Context, cfg *config, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if cfg.check == "" && cfg.store == "" && len(args) == 0 {
		return sumStdin(ctx, cfg, stdin, stdout, stderr)
	}

	store, err := openStore(ctx, cfg.store)
	if err != nil {
		return err
	}

	summer, err := crcgo.NewSummer(store, cfg.summerOptions(stderr)...)
	if err != nil {
		return err
	}

	if cfg.check != "" {
		return checkManifest(ctx, cfg, summer, stdin, stdout)
	}

	names := args
	if len(names) == 0 {
		if names, err = listBlobs(ctx, cfg, store); err != nil {
			return err
		}
	}
	results, err := summer.SumAll(ctx, names)
	if err != nil {
		return err
	}

	m := manifest.FromResults(results)
	if err := manifest.Write(stdout, m, cfg.format); err != nil {
		return err
	}
	if cfg.save != "" {
		return manifest.NewStore(store, cfg.save, cfg.format).Save(ctx, m)
	}
	return nil
}

// listBlobs returns every blob in the store except manifests written by
// --save, which would otherwise end up listing their own checksum.
func listBlobs(ctx context.Context, cfg *config, store blobstore.BlobStore) ([]string, error) {
	names, err := store.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list store: %w", err)
	}
	return slices.DeleteFunc(names, func(name string) bool {
		return name == manifest.DefaultName || name == cfg.save
	}), nil
}

func sumStdin(ctx context.Context, cfg *config, stdin io.Reader, stdout, stderr io.Writer) error {
	summer, err := crcgo.NewSummer(nil, cfg.summerOptions(stderr)...)
	if err != nil {
		return err
	}

	r := stdin
	if cfg.decompress {
		dec, _, err := compress.NewAutoReader(stdin)
		if err != nil {
			return err
		}
		defer dec.Close()
		r = dec
	}

	sum, n, err := summer.SumReader(ctx, r)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	if cfg.format == manifest.FormatJSON {
		return manifest.EncodeJSON(stdout, manifest.New(manifest.Entry{Name: "-", Sum: sum, Size: n}), nil)
	}
	_, err = fmt.Fprintln(stdout, crcgo.Format(sum))
	return err
}

func checkManifest(ctx context.Context, cfg *config, summer *crcgo.Summer, stdin io.Reader, stdout io.Writer) error {
	m, err := openManifest(ctx, cfg, summer.Store(), stdin)
	if err != nil {
		return err
	}

	mismatches, err := manifest.Verify(ctx, summer, m)
	if err != nil {
		return err
	}

	failed := make(map[string]manifest.Mismatch, len(mismatches))
	for _, mm := range mismatches {
		failed[mm.Name] = mm
	}
	for _, e := range m.Entries {
		status := "OK"
		if mm, ok := failed[e.Name]; ok {
			status = "FAILED"
			if mm.Err != nil {
				status = "FAILED open or read"
			}
		}
		if _, err := fmt.Fprintf(stdout, "%s: %s\n", e.Name, status); err != nil {
			return err
		}
	}

	if len(mismatches) > 0 {
		fmt.Fprintf(stdout, "%s: WARNING: %d of %d computed checksums did NOT match\n", cliName, len(mismatches), m.Len())
		return errMismatch
	}
	return nil
}

// openManifest reads the --check manifest from stdin, a local file or, when
// no such file exists and --store is set, the blob of that name.
func openManifest(ctx context.Context, cfg *config, store blobstore.BlobStore, stdin io.Reader) (*manifest.Manifest, error) {
	if cfg.check == "-" {
		return manifest.Read(stdin)
	}

	f, err := os.Open(cfg.check)
	if err == nil {
		defer f.Close()
		return manifest.Read(f)
	}
	if cfg.store == "" || !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	m, err := manifest.NewStore(store, cfg.check, cfg.format).Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load manifest %q from store: %w", cfg.check, err)
	}
	return m, nil
}

// defaultStore resolves names as plain file paths.
func defaultStore() blobstore.BlobStore {
	return blobstore.NewLocalStore("")
}
