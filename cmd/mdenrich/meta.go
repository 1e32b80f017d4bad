package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-mdenrich"
	"github.com/alnah/go-mdenrich/internal/yamlutil"
)

// runMeta prints a document's frontmatter with its reading time and
// text direction, as YAML or JSON.
func runMeta(ctx context.Context, args []string, env *Environment) error {
	fs := flag.NewFlagSet("meta", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	asJSON := fs.Bool("json", false, "print JSON instead of YAML")
	fs.Usage = func() { printMetaUsage(env.Stderr) }
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if fs.NArg() != 1 {
		printMetaUsage(env.Stderr)
		return fmt.Errorf("%w: meta takes exactly one file", ErrUsage)
	}

	path := fs.Arg(0)
	if err := validateMarkdownExtension(path); err != nil {
		return err
	}
	content, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadMarkdown, err)
	}

	conv, err := mdenrich.NewConverter()
	if err != nil {
		return err
	}
	res, err := conv.Enrich(ctx, mdenrich.Input{Markdown: string(content)})
	if err != nil {
		return err
	}

	doc, err := metaDocument(res)
	if err != nil {
		return err
	}

	var out []byte
	if *asJSON {
		out, err = yamlutil.MarshalJSON(doc)
	} else {
		out, err = yamlutil.Marshal(doc)
	}
	if err != nil {
		return fmt.Errorf("encoding metadata: %w", err)
	}
	_, err = env.Stdout.Write(out)
	return err
}

// metaDocument orders the output: frontmatter fields in document order,
// then readingTime and direction.
func metaDocument(res *mdenrich.Result) (any, error) {
	fields := res.Meta.Map()
	keys := res.Meta.Keys()
	values := make([]any, len(keys))
	for i, k := range keys {
		values[i] = fields[k]
	}
	front, err := yamlutil.Ordered(keys, values)
	if err != nil {
		return nil, err
	}

	return yamlutil.Ordered(
		[]string{"frontmatter", "readingTime", "direction"},
		[]any{front, res.ReadingTime, res.Direction},
	)
}
