// Package shell is the line-oriented command layer of slicestack. It owns
// the image and volume stores and routes each command line to a handler.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/shlex"

	"slicestack/internal/models"
	"slicestack/pkg/logging"
	"slicestack/pkg/store"
)

const prompt = "$ "

// Options are the output settings used by the handlers
type Options struct {
	// Comment is written into generated PGM files
	Comment string

	// PreviewScale is the default upscale factor for PNG output
	PreviewScale int

	// Prompt disables the "$ " prompt when false
	Prompt bool
}

// Shell dispatches command lines against one image store and one volume store
type Shell struct {
	images  *store.ImageStore
	volumes *store.VolumeStore
	opts    Options
	out     io.Writer
	reg     *registry
	log     *logging.Logger
}

// New wires the stores into a shell writing user messages to out
func New(images *store.ImageStore, volumes *store.VolumeStore, opts Options, out io.Writer, log *logging.Logger) (*Shell, error) {
	if opts.PreviewScale < 1 {
		opts.PreviewScale = 1
	}
	s := &Shell{
		images:  images,
		volumes: volumes,
		opts:    opts,
		out:     out,
		log:     logging.OrNop(log).With("component", "shell"),
	}
	if err := s.initRegistry(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Shell) initRegistry() error {
	r := newRegistry()

	for _, register := range []func(r *registry) error{
		registerCoreCommands,
		registerLoadCommands,
		registerProjectionCommands,
	} {
		if err := register(r); err != nil {
			return err
		}
	}

	s.reg = r
	return nil
}

// errExit is returned by the exit command to stop Run
var errExit = errors.New("exit")

// Run reads commands from in until exit or end of input
func (s *Shell) Run(in io.Reader) error {
	s.printf("Welcome to the slice stack interpreter. Type 'help' to list the available commands.\n")

	scanner := bufio.NewScanner(in)
	for {
		if s.opts.Prompt {
			s.printf("%s", prompt)
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("reading commands: %w", err)
			}
			return nil
		}
		if s.Execute(scanner.Text()) {
			return nil
		}
	}
}

// Execute runs one command line and reports whether the shell should exit.
// Handler errors are printed, never returned.
func (s *Shell) Execute(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	args, err := shlex.Split(line)
	if err != nil {
		s.printf("Error: cannot parse command line: %v\n", err)
		return false
	}
	if len(args) == 0 {
		return false
	}

	cmd, ok := s.reg.resolve(args[0])
	if !ok {
		s.printf("Unknown command. Type 'help' to list the available commands.\n")
		return false
	}

	err = cmd.Run(s, args[1:])
	switch {
	case err == nil:
	case errors.Is(err, errExit):
		return true
	case errors.Is(err, models.ErrUsage):
		s.printf("Incorrect usage. Type 'help %s' for more information.\n", cmd.Name)
	default:
		s.log.Debug("command failed", "command", cmd.Name, "error", err)
		s.printf("Error: %v\n", err)
	}
	return false
}

func (s *Shell) printf(format string, a ...interface{}) {
	fmt.Fprintf(s.out, format, a...)
}
