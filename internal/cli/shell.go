package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func (c *CLI) shellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive session; tab storage lives until exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sh := &CLI{
				keep:   true,
				titles: cmd.ErrOrStderr(),
				in:     bufio.NewReader(cmd.InOrStdin()),
			}
			defer sh.close()
			return sh.loop(cmd)
		},
	}
}

func (c *CLI) loop(parent *cobra.Command) error {
	out := parent.OutOrStdout()
	for {
		fmt.Fprint(out, "hospital> ")
		line, err := c.in.ReadString('\n')
		if err != nil && line == "" {
			if err == io.EOF {
				fmt.Fprintln(out)
				return nil
			}
			return err
		}

		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		if args[0] == "exit" || args[0] == "quit" {
			return nil
		}

		// flags keep their values between runs, so every line gets a fresh tree
		root := c.rootCmd()
		root.SetArgs(args)
		root.SetIn(c.in)
		root.SetOut(out)
		root.SetErr(parent.ErrOrStderr())
		// errors are already printed by cobra; the shell keeps going
		_ = root.ExecuteContext(parent.Context())
	}
}
