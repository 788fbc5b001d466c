package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/danmuck/tagframe/internal/config"
	"github.com/danmuck/tagframe/internal/logging"
	"github.com/danmuck/tagframe/internal/protocol/frame"
	"github.com/danmuck/tagframe/internal/protocol/tag"
	"github.com/rs/zerolog/log"
)

const usage = `usage: tagframe [-config path] <command> [args]

commands:
  list <file>          print the frames of the file's ID3v2.4 tag
  rewrite <in> <out>   re-encode the tag with the configured flags
  init-config <path>   write the default config file
`

var errUsage = errors.New("invalid usage")

func main() {
	logging.ConfigureRuntime()
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		log.Error().Err(err).Msg("tagframe failed")
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("tagframe", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	configPath := fs.String("config", "", "path to a tagframe TOML config")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		log.Debug().Str("path", *configPath).Msg("loaded config")
	}
	logging.SetLevel(cfg.LogLevel)

	rest := fs.Args()
	if len(rest) == 0 {
		return errUsage
	}
	switch rest[0] {
	case "list":
		if len(rest) != 2 {
			return errUsage
		}
		return listFile(cfg, rest[1], stdout)
	case "rewrite":
		if len(rest) != 3 {
			return errUsage
		}
		return rewriteFile(cfg, rest[1], rest[2])
	case "init-config":
		if len(rest) != 2 {
			return errUsage
		}
		return config.WriteTemplate(rest[1], false)
	default:
		return errUsage
	}
}

func listFile(cfg config.Config, path string, stdout io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	t, err := tag.Read(f, cfg.Codec(), cfg.ReadOptions())
	if err != nil {
		return fmt.Errorf("read tag %s: %w", path, err)
	}
	return printTag(stdout, t, cfg.Codec())
}

func printTag(w io.Writer, t *tag.Tag, codec frame.Codec) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tWIRE\tFLAGS\tCONTENT\n")
	for _, f := range t.Frames {
		// wire length as this codec would write the frame back
		n, err := codec.Write(io.Discard, f)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%d\n", f.ID, n, f.Flags, len(f.Content))
	}
	for _, s := range t.Skipped {
		fmt.Fprintf(tw, "%s\t%d\t%s\t-\n", s.ID, s.Size, "unsupported")
	}
	return tw.Flush()
}

func rewriteFile(cfg config.Config, inPath, outPath string) error {
	in, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()

	codec := cfg.Codec()
	t, err := tag.Read(in, codec, cfg.ReadOptions())
	if err != nil {
		return fmt.Errorf("read tag %s: %w", inPath, err)
	}
	for _, f := range t.Frames {
		cfg.Encode.Apply(f)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	n, err := tag.Write(out, t.Frames, codec, cfg.Encode.Padding)
	if err != nil {
		out.Close()
		return fmt.Errorf("write tag %s: %w", outPath, err)
	}
	audio, err := io.Copy(out, in)
	if err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	log.Info().
		Str("out", outPath).
		Int("frames", len(t.Frames)).
		Int("skipped", len(t.Skipped)).
		Int("tag_bytes", n).
		Int64("audio_bytes", audio).
		Msg("tag rewritten")
	return nil
}
