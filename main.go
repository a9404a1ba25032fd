package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/metcalfc/folio/internal/book"
	"github.com/metcalfc/folio/internal/pager"
	"github.com/metcalfc/folio/internal/reader"
	"github.com/metcalfc/folio/internal/state"
	"github.com/spf13/cobra"
)

// Version info (injected via ldflags)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var errNoInput = errors.New("no input provided; pass a file or pipe text to stdin")

// options are the flags shared by every subcommand.
type options struct {
	title     string
	authors   []string
	minLength int
	debug     bool
}

// runner carries the shared flags and logger into the subcommands.
type runner struct {
	opts *options
	log  *log.Logger
}

// loaded is a source file after the chapter pipeline has run on it.
type loaded struct {
	source reader.Source
	seg    book.Segmentation
	book   book.ParsedBook
}

func newRootCmd() *cobra.Command {
	r := &runner{
		opts: &options{},
		log:  log.NewWithOptions(os.Stderr, log.Options{Prefix: "folio"}),
	}

	root := &cobra.Command{
		Use:          "folio",
		Short:        "Split Project Gutenberg books into chapters and read them",
		Version:      fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			r.log.SetOutput(cmd.ErrOrStderr())
			if r.opts.debug {
				r.log.SetLevel(log.DebugLevel)
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&r.opts.title, "title", "", "Book title (default: from the Gutenberg header or file name)")
	flags.StringArrayVar(&r.opts.authors, "author", nil, "Book author, repeat for several (default: from the Gutenberg header)")
	flags.IntVar(&r.opts.minLength, "min-length", book.DefaultMinChapterLength, "Characters a chapter must exceed to be kept")
	flags.BoolVar(&r.opts.debug, "debug", false, "Log loading and segmentation details to stderr")

	root.AddCommand(newReadCmd(r), newTOCCmd(r), newExportCmd(r))
	return root
}

// load reads the file named in args, or stdin when args is empty, and runs
// the chapter pipeline on it.
func (r *runner) load(cmd *cobra.Command, args []string) (*loaded, error) {
	var (
		src reader.Source
		err error
	)
	if len(args) > 0 {
		src, err = reader.Open(args[0])
	} else {
		in := cmd.InOrStdin()
		if f, ok := in.(*os.File); ok {
			if stat, serr := f.Stat(); serr == nil && stat.Mode()&os.ModeCharDevice != 0 {
				return nil, errNoInput
			}
		}
		src, err = reader.Read("stdin", in)
	}
	if err != nil {
		return nil, err
	}
	r.log.Debug("loaded source", "name", src.Name, "format", src.Format, "bytes", len(src.Text))

	opts := book.DefaultOptions()
	opts.MinChapterLength = r.opts.minLength

	cleaned := book.StripBoilerplate(book.Normalize(src.Text))
	seg := book.Segment(cleaned, opts)
	b := book.Assemble(cleaned, seg.Chapters, r.metadata(src))

	r.log.Debug("segmented", "matcher", seg.Matcher, "headings", len(seg.Matches), "chapters", len(seg.Chapters))
	if seg.Matcher == "" {
		r.log.Warn("no chapter headings found, using the whole text as one chapter", "source", src.Name)
	}
	return &loaded{source: src, seg: seg, book: b}, nil
}

// metadata picks the title and authors: flags first, then what the source
// carried, then the file name.
func (r *runner) metadata(src reader.Source) book.Metadata {
	meta := src.Meta
	if r.opts.title != "" {
		meta.Title = r.opts.title
	}
	if len(r.opts.authors) > 0 {
		meta.Authors = nil
		for _, name := range r.opts.authors {
			meta.Authors = append(meta.Authors, book.Author{Name: name})
		}
	}
	if meta.Title == "" {
		base := filepath.Base(src.Name)
		meta.Title = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return meta
}

// session remembers the reading position of a file between runs. Piped
// input has no session.
type session struct {
	store *state.Store
	hash  string
	log   *log.Logger
}

func (r *runner) openSession(src reader.Source, p *pager.Pager, fresh bool) *session {
	if src.Name == "stdin" {
		return nil
	}
	store, err := state.Open(state.Dir())
	if err != nil {
		r.log.Debug("reading positions disabled", "err", err)
		return nil
	}
	hash, err := state.ComputeHash(src.Name)
	if err != nil {
		r.log.Debug("reading positions disabled", "err", err)
		return nil
	}
	if fresh {
		if err := store.Clear(hash); err != nil {
			r.log.Debug("clear position", "err", err)
		}
	} else if pos, ok := store.Get(hash); ok {
		p.Restore(pos)
		r.log.Debug("restored position", "chapter", pos.Chapter, "page", pos.Page)
	}
	return &session{store: store, hash: hash, log: r.log}
}

func (s *session) save(pos pager.Position) {
	if s == nil {
		return
	}
	if err := s.store.Set(s.hash, pos); err != nil {
		s.log.Warn("could not save reading position", "err", err)
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
