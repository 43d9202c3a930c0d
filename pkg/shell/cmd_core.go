package shell

import (
	"fmt"
	"strings"
)

func registerCoreCommands(r *registry) error {
	for _, cmd := range []command{
		{
			Name:    "help",
			Aliases: []string{"ayuda"},
			Usage:   "help [command]",
			Desc:    "Lists the commands, or describes one of them.",
			Run:     cmdHelp,
		},
		{
			Name:    "exit",
			Aliases: []string{"salir", "quit"},
			Usage:   "exit",
			Desc:    "Leaves the interpreter.",
			Run:     cmdExit,
		},
	} {
		if err := r.register(cmd); err != nil {
			return err
		}
	}
	return nil
}

func cmdHelp(s *Shell, args []string) error {
	if len(args) == 0 {
		var b strings.Builder
		b.WriteString("Available commands:\n")
		for _, name := range s.reg.names() {
			cmd, _ := s.reg.resolve(name)
			fmt.Fprintf(&b, "  %s\n", cmd.Usage)
		}
		s.printf("%s", b.String())
		return nil
	}

	cmd, ok := s.reg.resolve(args[0])
	if !ok {
		s.printf("No help available for '%s'.\n", args[0])
		return nil
	}
	s.printf("Usage: %s\n%s\n", cmd.Usage, cmd.Desc)
	if len(cmd.Aliases) > 0 {
		s.printf("Aliases: %s\n", strings.Join(cmd.Aliases, ", "))
	}
	return nil
}

func cmdExit(s *Shell, _ []string) error {
	s.printf("Leaving the interpreter...\n")
	return errExit
}
