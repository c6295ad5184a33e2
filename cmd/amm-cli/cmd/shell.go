// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/mattn/go-shellwords"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/ava-labs/cpamm/utils"
)

const exitCommand = "exit"

func newShellCmd(c *cli) *cobra.Command {
	var actor string
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Run pool actions interactively against an in-memory ledger",
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := newRunner(c.log, c.config, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			s := newShell(r, actor)
			utils.Outf("{{yellow}}enter an op and key=value fields, e.g.{{/}} swap tokenX=A tokenY=B amountX=100\n")
			utils.Outf("{{yellow}}type %s to quit{{/}}\n", exitCommand)
			for {
				prompt := promptui.Prompt{
					Label: actor,
					Validate: func(input string) error {
						if strings.TrimSpace(input) == exitCommand {
							return nil
						}
						_, err := s.parse(input)
						return err
					},
				}
				line, err := prompt.Run()
				if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
					return nil
				}
				if err != nil {
					return err
				}
				if strings.TrimSpace(line) == exitCommand {
					return nil
				}
				if err := s.exec(cmd.Context(), line); err != nil {
					utils.Outf("{{red}}%v{{/}}\n", err)
				}
			}
		},
	}
	cmd.Flags().StringVar(&actor, "actor", "alice", "account that runs commands without their own actor")
	return cmd
}

// shell runs one step per command line against a single ledger, so tokens
// and pools created by earlier commands stay available.
type shell struct {
	r    *runner
	plan *Plan
	next int
}

func newShell(r *runner, actor string) *shell {
	return &shell{
		r:    r,
		plan: &Plan{Name: "shell", Actor: actor},
	}
}

func (s *shell) exec(ctx context.Context, line string) error {
	step, err := s.parse(line)
	if err != nil {
		return err
	}
	id := s.next
	s.next++
	return s.r.step(ctx, s.plan, id, step)
}

// parse reads a command of the form `op key=value ...`. Keys are the plan
// step fields and values may be quoted.
func (s *shell) parse(line string) (*Step, error) {
	words, err := shellwords.Parse(line)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCommand, err)
	}
	if len(words) == 0 {
		return nil, ErrEmptyCommand
	}

	fields := map[string]interface{}{"op": words[0]}
	for _, word := range words[1:] {
		k, v, ok := strings.Cut(word, "=")
		if !ok || len(k) == 0 {
			return nil, fmt.Errorf("%w: %q is not key=value", ErrInvalidCommand, word)
		}
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			fields[k] = n
		} else {
			fields[k] = v
		}
	}
	b, err := yaml.Marshal(fields)
	if err != nil {
		return nil, err
	}
	var step Step
	if err := yaml.UnmarshalStrict(b, &step); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCommand, err)
	}

	p := Plan{Actor: s.plan.Actor, Steps: []Step{step}}
	if err := p.verify(); err != nil {
		return nil, err
	}
	return &step, nil
}
