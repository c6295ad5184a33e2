// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ava-labs/cpamm/actions"
	"github.com/ava-labs/cpamm/chain"
	"github.com/ava-labs/cpamm/codec"
	"github.com/ava-labs/cpamm/config"
	"github.com/ava-labs/cpamm/state"
	"github.com/ava-labs/cpamm/state/tstate"
	"github.com/ava-labs/cpamm/storage"
)

func newRunCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "run [path]",
		Short: "Run a plan of pool actions, use - to read it from stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				b   []byte
				err error
			)
			if args[0] == "-" {
				b, err = io.ReadAll(cmd.InOrStdin())
			} else {
				b, err = os.ReadFile(args[0])
			}
			if err != nil {
				return err
			}
			plan, err := unmarshalPlan(b)
			if err != nil {
				return err
			}
			r, err := newRunner(c.log, c.config, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return r.run(cmd.Context(), plan)
		},
	}
}

// Response is printed as one json line per step.
type Response struct {
	ID     int         `json:"id"`
	Op     Op          `json:"op"`
	Result codec.Typed `json:"result,omitempty"`
	Error  string      `json:"error,omitempty"`
}

type runner struct {
	log    logging.Logger
	config *config.Config
	out    io.Writer

	db        database.Database
	processor *chain.Processor

	// symbol -> address of every token created by the plan
	tokens map[string]codec.Address
}

func newRunner(log logging.Logger, cfg *config.Config, out io.Writer) (*runner, error) {
	db := memdb.New()
	processor, err := chain.NewProcessor(log, db, cfg.MetricsNamespace, prometheus.NewRegistry())
	if err != nil {
		return nil, err
	}
	return &runner{
		log:       log,
		config:    cfg,
		out:       out,
		db:        db,
		processor: processor,
		tokens:    make(map[string]codec.Address),
	}, nil
}

func (r *runner) run(ctx context.Context, plan *Plan) error {
	r.log.Info("running plan",
		zap.String("name", plan.Name),
		zap.Int("steps", len(plan.Steps)),
	)
	for i := range plan.Steps {
		if err := r.step(ctx, plan, i, &plan.Steps[i]); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}
	r.log.Info("plan finished",
		zap.String("name", plan.Name),
		zap.Uint64("committed", r.processor.Committed()),
	)
	return nil
}

// step runs [step], prints its response and checks its requirements.
func (r *runner) step(ctx context.Context, plan *Plan, id int, step *Step) error {
	r.log.Debug("step",
		zap.Int("id", id),
		zap.String("op", string(step.Op)),
		zap.String("description", step.Description),
	)

	result, stepErr := r.execute(ctx, plan, step)
	resp := &Response{ID: id, Op: step.Op, Result: result}
	if stepErr != nil {
		resp.Error = stepErr.Error()
	}
	b, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	fmt.Fprintln(r.out, string(b))

	return check(step.Require, result, stepErr)
}

func (r *runner) execute(ctx context.Context, plan *Plan, step *Step) (codec.Typed, error) {
	actorName := step.Actor
	if len(actorName) == 0 {
		actorName = plan.Actor
	}
	actor := storage.AccountAddress(actorName)

	switch step.Op {
	case OpBalance:
		token, err := r.token(step.Token)
		if err != nil {
			return nil, err
		}
		return r.read(ctx, &actions.GetBalance{Token: token, Account: storage.AccountAddress(step.Account)})
	case OpPool:
		x, y, err := r.pair(step)
		if err != nil {
			return nil, err
		}
		return r.read(ctx, &actions.GetLiquidityPool{TokenX: x, TokenY: y})
	}

	action, err := r.action(ctx, step)
	if err != nil {
		return nil, err
	}
	result, err := r.processor.Execute(ctx, actor, action)
	if err != nil {
		return nil, err
	}
	if created, ok := result.(*actions.CreateTokenResult); ok {
		r.tokens[step.Symbol] = created.TokenAddress
	}
	return result, nil
}

func (r *runner) action(ctx context.Context, step *Step) (chain.Action, error) {
	switch step.Op {
	case OpCreateToken:
		return &actions.CreateToken{
			Name:     []byte(step.Name),
			Symbol:   []byte(step.Symbol),
			Metadata: []byte(step.Metadata),
		}, nil
	case OpMint:
		token, err := r.token(step.Token)
		if err != nil {
			return nil, err
		}
		return &actions.MintToken{
			To:    storage.AccountAddress(step.Account),
			Token: token,
			Value: step.AmountX,
		}, nil
	case OpTransfer:
		token, err := r.token(step.Token)
		if err != nil {
			return nil, err
		}
		return &actions.TransferToken{
			To:    storage.AccountAddress(step.Account),
			Token: token,
			Value: step.AmountX,
		}, nil
	case OpBurn:
		token, err := r.token(step.Token)
		if err != nil {
			return nil, err
		}
		return &actions.BurnToken{Token: token, Value: step.AmountX}, nil
	}

	x, y, err := r.pair(step)
	if err != nil {
		return nil, err
	}
	switch step.Op {
	case OpCreatePool:
		feeBPS := r.config.DefaultFeeBPS
		if step.FeeBPS != nil {
			feeBPS = *step.FeeBPS
		}
		feeSink := r.config.GetFeeSink()
		if len(step.FeeSink) > 0 {
			feeSink = storage.AccountAddress(step.FeeSink)
		}
		return &actions.CreateLiquidityPool{TokenX: x, TokenY: y, FeeBPS: feeBPS, FeeSink: feeSink}, nil
	case OpAddLiquidity:
		return &actions.AddLiquidity{
			TokenX:    x,
			TokenY:    y,
			AmountX:   step.AmountX,
			AmountY:   step.AmountY,
			MinShares: step.Shares,
		}, nil
	case OpSwap:
		feeSink, err := r.feeSink(ctx, x, y, step)
		if err != nil {
			return nil, err
		}
		return &actions.Swap{
			TokenIn:      x,
			TokenOut:     y,
			AmountIn:     step.AmountX,
			MinAmountOut: step.MinOut,
			FeeSink:      feeSink,
		}, nil
	case OpRemoveLiquidity:
		return &actions.RemoveLiquidity{
			TokenX:     x,
			TokenY:     y,
			Shares:     step.Shares,
			MinAmountX: step.MinX,
			MinAmountY: step.MinY,
		}, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownOp, step.Op)
	}
}

// read runs a read-only action in a view that is never committed.
func (r *runner) read(ctx context.Context, action chain.Action) (codec.Typed, error) {
	keys := action.StateKeys(codec.EmptyAddress)
	values, err := state.Load(ctx, state.NewDatabaseReader(r.db), keys)
	if err != nil {
		return nil, err
	}
	return action.Execute(ctx, tstate.New(len(keys)).NewView(keys, values), codec.EmptyAddress)
}

// feeSink names the fee sink for a swap, looking it up from the pool when
// the step leaves it out.
func (r *runner) feeSink(ctx context.Context, x codec.Address, y codec.Address, step *Step) (codec.Address, error) {
	if len(step.FeeSink) > 0 {
		return storage.AccountAddress(step.FeeSink), nil
	}
	lp, err := storage.GetLiquidityPool(ctx, state.NewDatabaseReader(r.db), storage.LiquidityPoolAddress(x, y))
	if err != nil {
		return codec.EmptyAddress, err
	}
	return lp.FeeSink, nil
}

func (r *runner) pair(step *Step) (codec.Address, codec.Address, error) {
	x, err := r.token(step.TokenX)
	if err != nil {
		return codec.EmptyAddress, codec.EmptyAddress, err
	}
	y, err := r.token(step.TokenY)
	if err != nil {
		return codec.EmptyAddress, codec.EmptyAddress, err
	}
	return x, y, nil
}

func (r *runner) token(ref string) (codec.Address, error) {
	if addr, ok := r.tokens[ref]; ok {
		return addr, nil
	}
	if x, y, ok := strings.Cut(ref, "/"); ok {
		tokenX, err := r.token(x)
		if err != nil {
			return codec.EmptyAddress, err
		}
		tokenY, err := r.token(y)
		if err != nil {
			return codec.EmptyAddress, err
		}
		return storage.LiquidityPoolTokenAddress(storage.LiquidityPoolAddress(tokenX, tokenY)), nil
	}
	addr, err := codec.StringToAddress(ref)
	if err != nil {
		return codec.EmptyAddress, fmt.Errorf("%w %q", ErrUnknownToken, ref)
	}
	return addr, nil
}

func check(req *Require, result codec.Typed, stepErr error) error {
	if req == nil {
		return stepErr
	}
	if len(req.Error) > 0 {
		if stepErr == nil {
			return fmt.Errorf("%w: %q", ErrUnexpectedSuccess, req.Error)
		}
		if !strings.Contains(stepErr.Error(), req.Error) {
			return fmt.Errorf("%w: error %q does not contain %q", ErrAssertionFailed, stepErr, req.Error)
		}
		return nil
	}
	if stepErr != nil {
		return stepErr
	}
	if len(req.Result) == 0 {
		return nil
	}

	fields, err := resultFields(result)
	if err != nil {
		return err
	}
	for _, a := range req.Result {
		actual, ok := fields[a.Field]
		if !ok {
			return fmt.Errorf("%w %q", ErrUnknownField, a.Field)
		}
		passed, err := a.check(actual)
		if err != nil {
			return err
		}
		if !passed {
			return fmt.Errorf("%w: %s %s %d, got %d", ErrAssertionFailed, a.Field, a.Operator, a.Value, actual)
		}
	}
	return nil
}

// resultFields flattens the numeric json fields of [result].
func resultFields(result codec.Typed) (map[string]uint64, error) {
	b, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, err
	}
	fields := make(map[string]uint64, len(raw))
	for k, v := range raw {
		var n uint64
		if err := json.Unmarshal(v, &n); err == nil {
			fields[k] = n
		}
	}
	return fields, nil
}
