package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/spf13/cobra"
	"golang.org/x/sync/semaphore"

	"github.com/barrowlang/pgrep"
)

// searchOptions holds every flag newSearchCommand exposes, mirroring
// chop.go's opt-struct-plus-flags.StringVarP shape.
type searchOptions struct {
	ignoreCase    bool
	fixedString   bool
	lineNumber    bool
	byteOffset    bool
	onlyMatching  bool
	count         bool
	filesWithHits bool
	recursive     bool
	noMmap        bool
	workers       int
	readers       int
	blockSize     int
	color         string
}

// addSearchFlags registers the search flag set on cmd and returns the
// struct they populate; shared by newSearchCommand and the root command so
// a bare `pgrep PATTERN [target...]` behaves identically to
// `pgrep search PATTERN [target...]`.
func addSearchFlags(cmd *cobra.Command) *searchOptions {
	opt := &searchOptions{}
	flags := cmd.Flags()
	flags.BoolVarP(&opt.ignoreCase, "ignore-case", "i", false, "case-insensitive match")
	flags.BoolVarP(&opt.fixedString, "fixed-strings", "F", false, "treat pattern as a literal string")
	flags.BoolVarP(&opt.lineNumber, "line-number", "n", false, "prefix each match with its line number")
	flags.BoolVarP(&opt.byteOffset, "byte-offset", "b", false, "prefix each match with its byte offset")
	flags.BoolVarP(&opt.onlyMatching, "only-matching", "o", false, "print only the matched text, one per occurrence")
	flags.BoolVarP(&opt.count, "count", "c", false, "print only a count of matching lines")
	flags.BoolVarP(&opt.filesWithHits, "files-with-matches", "l", false, "print only the names of files containing a match")
	flags.BoolVarP(&opt.recursive, "recursive", "r", false, "recurse into directories")
	flags.BoolVar(&opt.noMmap, "no-mmap", false, "never memory-map input files")
	flags.IntVarP(&opt.workers, "workers", "j", 4, "number of concurrent searcher workers per file")
	flags.IntVar(&opt.readers, "readers", 1, "number of line-aligned ranges each file is split into for reading (read one after another)")
	flags.IntVar(&opt.blockSize, "block-size", 0, "target chunk size in bytes (0 = default)")
	flags.StringVar(&opt.color, "color", "auto", "colorize output: auto, always, never")
	return opt
}

func newSearchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <pattern> [target...]",
		Short: "Search one or more files or directories for a pattern",
		Long: `Scans each target in parallel, splitting large files into line-aligned
chunks searched concurrently, and prints matches in the order they occur in
the original input. A target may be a local path, "-" for stdin, or a
s3://, sftp://, gs://, http(s):// URL. With no target, reads stdin.`,
		Example:      `  pgrep search -n Sherlock book.txt`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
	}
	opt := addSearchFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error { return runSearch(cmd.Context(), *opt, args) }
	return cmd
}

func runSearch(ctx context.Context, opt searchOptions, args []string) error {
	pattern := args[0]
	targets := args[1:]
	if len(targets) == 0 {
		targets = []string{"-"}
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	base := pgrep.Options{
		Pattern:       pattern,
		FixedString:   opt.fixedString,
		IgnoreCase:    opt.ignoreCase,
		LineNumber:    opt.lineNumber,
		ByteOffset:    opt.byteOffset,
		OnlyMatching:  opt.onlyMatching,
		Count:         opt.count,
		Locale:        pgrep.LocaleUTF8,
		UseMmap:       !opt.noMmap,
		WorkerThreads: opt.workers,
		ReaderThreads: opt.readers,
		BlockSize:     opt.blockSize,
	}
	if base.IgnoreCase && isASCIIPattern(pattern) {
		base.Locale = pgrep.LocaleASCII
	}
	if err := base.Validate(); err != nil {
		return err
	}
	base.Color = colorMode(opt.color)

	var files []string
	for _, t := range targets {
		if opt.recursive {
			walked, err := walkTarget(t)
			if err != nil {
				return err
			}
			files = append(files, walked...)
			continue
		}
		files = append(files, t)
	}

	if len(files) == 0 {
		os.Exit(1)
	}

	multi := len(files) > 1
	var hadMatch int32

	if !multi {
		matched, err := searchOneTarget(ctx, &base, files[0], cfg, multi, opt.filesWithHits)
		if err != nil {
			return err
		}
		if !matched {
			os.Exit(1)
		}
		return nil
	}

	// Several files share one worker_threads-sized pool instead of each
	// spinning up its own, so -r over a large tree doesn't oversubscribe
	// CPUs: every per-file Executor runs single-threaded and the fan-out
	// across files supplies the parallelism instead.
	sem := semaphore.NewWeighted(int64(base.WorkerThreads))
	var wg sync.WaitGroup
	var hadError int32
	for _, target := range files {
		target := target
		opts := base
		opts.WorkerThreads = 1
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)
			matched, err := searchOneTarget(ctx, &opts, target, cfg, multi, opt.filesWithHits)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", target, err)
				atomic.StoreInt32(&hadError, 1)
				return
			}
			if matched {
				atomic.StoreInt32(&hadMatch, 1)
			}
		}()
	}
	wg.Wait()

	if atomic.LoadInt32(&hadError) != 0 {
		return fmt.Errorf("one or more targets failed")
	}
	if atomic.LoadInt32(&hadMatch) == 0 {
		os.Exit(1)
	}
	return nil
}

// isASCIIPattern reports whether pattern contains only ASCII bytes, so a
// case-insensitive search on it can use the faster ASCII fold path instead
// of routing through the regex engine's Unicode folding.
func isASCIIPattern(pattern string) bool {
	for i := 0; i < len(pattern); i++ {
		if pattern[i] >= 0x80 {
			return false
		}
	}
	return true
}

func colorMode(mode string) pgrep.Color {
	switch mode {
	case "always":
		return pgrep.ColorOn
	case "never":
		return pgrep.ColorOff
	default:
		if isTerminalStdout() {
			return pgrep.ColorOn
		}
		return pgrep.ColorOff
	}
}

func searchOneTarget(ctx context.Context, opts *pgrep.Options, target string, cfg *Config, multi, filesWithHits bool) (bool, error) {
	src, err := newSource(target, cfg)
	if err != nil {
		return false, err
	}

	var reader pgrep.Reader
	if _, ok := src.(stdinSource); ok {
		opts.UseMmap = false
		reader = pgrep.NewStreamReader(os.Stdin, opts.BlockSize)
	} else {
		path, cleanup, err := src.Fetch(ctx)
		if err != nil {
			return false, err
		}
		defer cleanup()
		switch {
		case opts.ReaderThreads > 1:
			ranges, rerr := pgrep.PartitionFile(path, opts.ReaderThreads)
			if rerr != nil {
				return false, rerr
			}
			reader, err = pgrep.NewMultiReader(path, ranges, opts.ReaderThreads)
		case opts.UseMmap:
			reader, err = pgrep.NewMmapReader(path, opts.BlockSize)
		default:
			reader, err = pgrep.NewFileStreamReader(path, opts.BlockSize)
		}
		if err != nil {
			return false, err
		}
	}

	prefix := ""
	if multi {
		prefix = target + ":"
	}

	if filesWithHits {
		sink := pgrep.NewCountingSink()
		exec, err := pgrep.New(opts, reader, sink, nil)
		if err != nil {
			return false, err
		}
		if err := exec.Run(ctx); err != nil {
			return false, err
		}
		if sink.Count() > 0 {
			fmt.Println(target)
			return true, nil
		}
		return false, nil
	}

	if opts.Count {
		sink := pgrep.NewCountingSink()
		exec, err := pgrep.New(opts, reader, sink, nil)
		if err != nil {
			return false, err
		}
		if err := exec.Run(ctx); err != nil {
			return false, err
		}
		if multi {
			fmt.Printf("%s%d\n", prefix, sink.Count())
		} else {
			fmt.Println(sink.Count())
		}
		return sink.Count() > 0, nil
	}

	matched := false
	emit := func(_ pgrep.ChunkIndex, matches []pgrep.Match) error {
		for _, m := range matches {
			matched = true
			printMatch(prefix, opts, m)
		}
		return nil
	}
	sink := pgrep.NewOrderedSink(emit, opts.WorkerThreads*2, opts.WorkerThreads)
	exec, err := pgrep.New(opts, reader, sink, newConsoleProgressBar(prefix))
	if err != nil {
		return false, err
	}
	if err := exec.Run(ctx); err != nil {
		return matched, err
	}
	return matched, nil
}

func printMatch(prefix string, opts *pgrep.Options, m pgrep.Match) {
	var b strings.Builder
	b.WriteString(prefix)
	if opts.LineNumber {
		fmt.Fprintf(&b, "%d:", m.LineNumber)
	}
	if opts.ByteOffset {
		fmt.Fprintf(&b, "%d:", m.BytePosition)
	}
	if opts.Color == pgrep.ColorOn {
		b.WriteString(colorize(m.Text, opts.Pattern))
	} else {
		b.WriteString(m.Text)
	}
	fmt.Println(b.String())
}
