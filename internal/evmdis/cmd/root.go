package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime/pprof"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"evmdis/internal/disasm"
	"evmdis/internal/evm"
	"evmdis/internal/evmdis/log"
	"evmdis/internal/ui/colorize"
	"evmdis/internal/ui/pager"
)

// JSONOutput is the document written by --json.
type JSONOutput struct {
	CodeHash     string            `json:"code_hash"`
	Size         uint64            `json:"size"`
	Instructions []JSONInstruction `json:"instructions"`
	JumpDests    []uint64          `json:"jumpdests"`
	Error        string            `json:"error,omitempty"`
}

// JSONInstruction is one listing entry in JSON output.
type JSONInstruction struct {
	PC   uint64 `json:"pc"`
	Op   string `json:"op"`
	Text string `json:"text"`
}

type listingOptions struct {
	offsets bool
	color   bool
	flush   bool // flush after every line
}

func init() {
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Debug")

	rootCmd.Flags().BoolP("offsets", "o", false, "Prefix each instruction with its byte offset")
	rootCmd.Flags().BoolP("json", "j", false, "Output the listing as JSON")
	rootCmd.Flags().BoolP("tui", "t", false, "Page through the listing interactively")
	rootCmd.Flags().BoolP("follow", "F", false, "Keep decoding as the file grows")
	rootCmd.Flags().Bool("color", false, "Force colored output")
	rootCmd.Flags().String("cpuprofile", "", "Write CPU profile to file")
	rootCmd.Flags().String("memprofile", "", "Write memory profile to file")

	rootCmd.MarkFlagsMutuallyExclusive("json", "tui", "follow")
}

var rootCmd = &cobra.Command{
	Use:   "evmdis [file]",
	Short: "Disassemble hex-encoded EVM bytecode",
	Long: `Evmdis reads EVM bytecode written as hex text and prints one instruction
per line. Whitespace anywhere in the input is ignored. With no file, or
when the file is "-", the bytecode is read from standard input.`,
	Example: `
# Disassemble a file
evmdis contract.hex

# Disassemble from a pipe, with byte offsets
echo 6001600201 | evmdis -o

# Browse a listing interactively
evmdis --tui contract.hex
  `,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		debug, _ := cmd.Flags().GetBool("debug")
		log.Setup(debug)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := configFromFlags(cmd)

		if cfg.CPUProfile != "" {
			f, err := os.Create(cfg.CPUProfile)
			if err != nil {
				return fmt.Errorf("could not create CPU profile: %v", err)
			}
			defer f.Close()
			if err := pprof.StartCPUProfile(f); err != nil {
				return fmt.Errorf("could not start CPU profile: %v", err)
			}
			defer pprof.StopCPUProfile()
		}

		if cfg.MemProfile != "" {
			defer func() {
				f, err := os.Create(cfg.MemProfile)
				if err != nil {
					fmt.Fprintf(os.Stderr, "could not create memory profile: %v\n", err)
					return
				}
				defer f.Close()
				if err := pprof.WriteHeapProfile(f); err != nil {
					fmt.Fprintf(os.Stderr, "could not write memory profile: %v\n", err)
				}
			}()
		}

		path := "-"
		if len(args) > 0 {
			path = args[0]
		}

		opts := listingOptions{
			offsets: cfg.Offsets,
			color:   cfg.Color || (term.IsTerminal(os.Stdout.Fd()) && !colorize.Disabled()),
		}
		out := cmd.OutOrStdout()

		slog.Debug("Starting disassembly", "input", path, "json", cfg.JSON, "tui", cfg.TUI, "follow", cfg.Follow)

		switch {
		case cfg.TUI:
			if path == "-" {
				return errors.New("--tui needs a file argument")
			}
			if !term.IsTerminal(os.Stdout.Fd()) {
				return errors.New("--tui needs a terminal")
			}
			if err := pager.Run(cmd.Context(), path, cfg.Offsets); err != nil {
				slog.Error("TUI run error", "error", err)
				return fmt.Errorf("TUI error: %v", err)
			}
			return nil

		case cfg.Follow:
			if path == "-" {
				return errors.New("--follow needs a file argument")
			}
			opts.flush = true
			return runFollow(cmd.Context(), out, path, opts)
		}

		src, err := openInput(path, cmd.InOrStdin())
		if err != nil {
			return err
		}
		defer src.Close()

		if cfg.JSON {
			return runJSON(out, src)
		}
		return disassemble(out, src, opts)
	},
}

// openInput opens the bytecode source. "-" selects stdin.
func openInput(path string, stdin io.Reader) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %s", path)
		}
		return nil, fmt.Errorf("cannot open file: %w", err)
	}
	return f, nil
}

// disassemble writes one line per instruction decoded from r. Lines written
// before a decode error are kept.
func disassemble(w io.Writer, r io.Reader, opts listingOptions) (err error) {
	bw := bufio.NewWriter(w)
	defer func() {
		if ferr := bw.Flush(); err == nil {
			err = ferr
		}
	}()

	d := evm.NewDisassembler(r)
	var pc uint64
	count := 0
	for inst, derr := range d.All() {
		if derr != nil {
			return derr
		}
		line := disasm.FormatLine(disasm.FromInstruction(pc, inst), opts.offsets)
		if opts.color {
			line = colorize.ColorizeInstructionLine(line)
		}
		if _, err := fmt.Fprintln(bw, line); err != nil {
			return err
		}
		if opts.flush {
			if err := bw.Flush(); err != nil {
				return err
			}
		}
		pc += uint64(inst.Width())
		count++
	}

	slog.Debug("Disassembly finished", "instructions", count, "bytes", d.Offset(), "degraded", d.Degraded())
	return nil
}

// runJSON writes the whole listing as a single JSON document. A decode error
// is recorded in the document and also returned.
func runJSON(w io.Writer, r io.Reader) error {
	stream, decodeErr := disasm.Read(r)

	output := JSONOutput{
		CodeHash:     stream.CodeHash().Hex(),
		Size:         stream.Size(),
		Instructions: make([]JSONInstruction, 0, len(stream)),
		JumpDests:    stream.JumpDests(),
	}
	if output.JumpDests == nil {
		output.JumpDests = []uint64{}
	}
	for _, inst := range stream {
		output.Instructions = append(output.Instructions, JSONInstruction{
			PC:   inst.PC,
			Op:   inst.Op,
			Text: inst.Text,
		})
	}
	if decodeErr != nil {
		output.Error = decodeErr.Error()
	}

	jsonData, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %v", err)
	}
	if _, err := fmt.Fprintln(w, string(jsonData)); err != nil {
		return err
	}
	return decodeErr
}

func Execute() {
	// Bypass fang when output is being piped so error output stays plain.
	if !term.IsTerminal(os.Stdout.Fd()) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		err := rootCmd.ExecuteContext(ctx)
		stop()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
		return
	}

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}
