package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/alexflint/go-arg"
	"github.com/rs/zerolog"

	"github.com/ironsheep/document-watermark-mcp/internal/config"
	"github.com/ironsheep/document-watermark-mcp/internal/logging"
	"github.com/ironsheep/document-watermark-mcp/internal/server"
	"github.com/ironsheep/document-watermark-mcp/internal/watermark"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// watermarkArgs are the flags of the one-shot watermark subcommand.
type watermarkArgs struct {
	In   string `arg:"--in,required" help:"path to the document photo"`
	Text string `arg:"--text,required" help:"holder text embedded in the watermark"`
	Out  string `arg:"--out" help:"output file or directory (default: WATERMARK_OUTPUT_DIR)"`
}

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("watermark-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printHelp()
			return
		}
	}

	cfg := config.Load()
	// stdout is for MCP protocol
	log := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	if len(os.Args) > 1 && os.Args[1] == "watermark" {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		err := runWatermark(ctx, cfg, log, os.Args[2:])
		stop()
		if err != nil {
			log.Error().Err(err).Msg("watermark failed")
			os.Exit(1)
		}
		return
	}

	log.Debug().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("commit", GitCommit).
		Msg("document watermark MCP server starting")

	srv := server.New(cfg, log, Version)
	if err := srv.Run(); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

func runWatermark(ctx context.Context, cfg config.Config, log zerolog.Logger, argv []string) error {
	var args watermarkArgs
	p, err := arg.NewParser(arg.Config{Program: "watermark-mcp watermark"}, &args)
	if err != nil {
		return err
	}
	if err := p.Parse(argv); err != nil {
		if errors.Is(err, arg.ErrHelp) {
			p.WriteHelp(os.Stdout)
			return nil
		}
		p.WriteUsage(os.Stderr)
		return err
	}
	if args.Out == "" {
		args.Out = cfg.OutputDir
	}

	f, err := os.Open(args.In)
	if err != nil {
		return fmt.Errorf("%w: failed to open image: %v", watermark.ErrDecode, err)
	}
	defer f.Close()

	pl := watermark.New(
		watermark.WithLogger(log),
		watermark.WithOpacity(cfg.Opacity),
		watermark.WithMaxPixels(cfg.MaxPixels),
	)
	res := <-pl.Start(ctx, f, args.Text)
	if res.Err != nil {
		return res.Err
	}

	path, err := res.Artifact.Save(args.Out)
	if err != nil {
		return err
	}
	log.Info().
		Str("path", path).
		Int("width", res.Artifact.Width).
		Int("height", res.Artifact.Height).
		Msg("watermarked document saved")
	fmt.Println(path)
	return nil
}

func printHelp() {
	fmt.Println("watermark-mcp - MCP server for watermarking document photos")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  watermark-mcp [options]")
	fmt.Println("  watermark-mcp watermark --in <file> --text <holder> [--out <file|dir>]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables (also read from .env):")
	fmt.Println("  WATERMARK_LOG_LEVEL=info       debug, info, warn or error")
	fmt.Println("  WATERMARK_LOG_FORMAT=console   console or json")
	fmt.Println("  WATERMARK_OUTPUT_DIR           Default directory for saved artifacts")
	fmt.Println("  WATERMARK_OCR_LANGUAGE=eng     Tesseract language for watermark_verify")
	fmt.Println("  WATERMARK_OPACITY=0.4          Watermark opacity, 0 to 1")
	fmt.Println("  WATERMARK_MAX_PIXELS=50000000  Largest canvas a single run may allocate")
	fmt.Println()
	fmt.Println("Without a subcommand the server communicates via MCP protocol over stdin/stdout.")
	fmt.Println("Configure it in your MCP client.")
}
