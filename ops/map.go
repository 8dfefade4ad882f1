package ops

import (
	"context"
	"fmt"
	"iter"

	"github.com/reusee/gtscript/gts"
	"github.com/reusee/gtscript/mappers"
	"github.com/reusee/gtscript/phases"
	"github.com/reusee/gtscript/stackvm"
	"github.com/reusee/gtscript/values"
	"github.com/reusee/gtscript/windows"
	"github.com/samber/lo"
)

// mapState flows through the MAP phases.
type mapState struct {
	m *stackvm.Machine

	// popped operands, pushed back when the arguments are rejected
	top   values.Value
	below values.Value

	inputs []*gts.Series
	single bool
	mapper mappers.Mapper
	config windows.Config

	plans   []iter.Seq[windows.Window]
	outputs []*gts.Series
}

type mapPhase = phases.Phase[*mapState]

type mapPhaseBuilder = phases.PhaseBuilder[*mapState]

const (
	keyMapper      = "mapper"
	keyPre         = "pre"
	keyPost        = "post"
	keyOccurence   = "occurence"
	keyOccurrences = "occurrences"
	keyStep        = "step"
	keyOverlapping = "overlapping"
	keyTicks       = "ticks"
)

var mapKeys = []string{
	keyMapper, keyPre, keyPost, keyOccurence, keyOccurrences, keyStep, keyOverlapping, keyTicks,
}

// positional slots after the series
var positionalKeys = []string{
	keyMapper, keyPre, keyPost, keyOccurrences, keyStep, keyOverlapping, keyTicks,
}

// MAP accepts
//
//	[ series mapper pre post occurrences step overlapping ticks ] MAP
//	series { 'mapper' mapper 'pre' pre ... } MAP
//
// where series is a GTS or a list of GTS, and all slots after mapper are optional.
var mapOperator = stackvm.OperatorFunc(func(m *stackvm.Machine) error {
	_, err := phases.Run(m.Context(), phases.Chain(
		parseArguments,
		planWindows,
		invokeMappers,
		assembleOutput,
	), &mapState{
		m: m,
	})
	return err
})

func argumentError(state *mapState, format string, args ...any) error {
	if state.below != nil {
		state.m.Push(state.below)
	}
	state.m.Push(state.top)
	return fmt.Errorf("%w: %s", stackvm.ErrArgumentShape, fmt.Sprintf(format, args...))
}

func parseArguments(cont mapPhase) mapPhase {
	return func(ctx context.Context, state *mapState) (mapPhase, *mapState, error) {
		top, err := state.m.Pop()
		if err != nil {
			return nil, state, err
		}
		state.top = top

		params := make(map[string]values.Value)
		var input values.Value
		switch top := top.(type) {

		case *values.List:
			if top.Len() < 2 {
				return nil, state, argumentError(state, "expecting at least a series and a mapper, got %d elements", top.Len())
			}
			if top.Len() > len(positionalKeys)+1 {
				return nil, state, argumentError(state, "too many elements: %d", top.Len())
			}
			input = top.Items[0]
			for i, v := range top.Items[1:] {
				params[positionalKeys[i]] = v
			}

		case *values.Map:
			for key, v := range top.All() {
				if !lo.Contains(mapKeys, key) {
					return nil, state, argumentError(state, "unknown key %q", key)
				}
				if key == keyOccurence {
					key = keyOccurrences
					if _, ok := top.Get(keyOccurrences); ok {
						return nil, state, argumentError(state, "both %s and %s are set", keyOccurence, keyOccurrences)
					}
				}
				params[key] = v
			}
			below, err := state.m.Pop()
			if err != nil {
				state.m.Push(state.top)
				return nil, state, err
			}
			state.below = below
			input = below

		default:
			return nil, state, argumentError(state, "expecting a list or a map, got %s", kindName(top))
		}

		// series
		switch input := input.(type) {
		case *gts.Series:
			state.single = true
			state.inputs = []*gts.Series{input}
		case *values.List:
			for _, item := range input.Items {
				s, ok := item.(*gts.Series)
				if !ok {
					return nil, state, argumentError(state, "expecting a list of GTS, found %s", kindName(item))
				}
				state.inputs = append(state.inputs, s)
			}
		default:
			return nil, state, argumentError(state, "expecting a GTS or a list of GTS, got %s", kindName(input))
		}

		// mapper
		switch mapper := params[keyMapper].(type) {
		case mappers.Mapper:
			state.mapper = mapper
		case *values.Macro:
			state.mapper = mappers.MacroMapper{
				Macro: mapper,
			}
		case nil:
			return nil, state, argumentError(state, "missing mapper")
		default:
			return nil, state, argumentError(state, "expecting a mapper, got %s", mapper.Kind())
		}

		// window
		config := windows.DefaultConfig()
		for key, target := range map[string]*int64{
			keyPre:         &config.Pre,
			keyPost:        &config.Post,
			keyOccurrences: &config.Occurrences,
			keyStep:        &config.Step,
		} {
			v, ok := params[key]
			if !ok {
				continue
			}
			i, ok := values.AsInt(v)
			if !ok {
				return nil, state, argumentError(state, "%s must be an integer, got %s", key, v)
			}
			*target = i
		}
		if v, ok := params[keyOverlapping]; ok {
			b, ok := v.(values.Bool)
			if !ok {
				return nil, state, argumentError(state, "%s must be a boolean, got %s", keyOverlapping, v)
			}
			config.Overlapping = bool(b)
		}
		if v, ok := params[keyTicks]; ok {
			list, ok := v.(*values.List)
			if !ok {
				return nil, state, argumentError(state, "%s must be a list, got %s", keyTicks, kindName(v))
			}
			config.Ticks = make([]int64, 0, list.Len())
			for _, item := range list.Items {
				tick, ok := values.AsInt(item)
				if !ok {
					return nil, state, argumentError(state, "ticks must be integers, got %s", item)
				}
				config.Ticks = append(config.Ticks, tick)
			}
		}
		if err := config.Validate(); err != nil {
			return nil, state, argumentError(state, "%v", err)
		}
		state.config = config

		return cont, state, nil
	}
}

func kindName(v values.Value) string {
	if v == nil {
		return values.KindInvalid.String()
	}
	return v.Kind().String()
}

func planWindows(cont mapPhase) mapPhase {
	return func(ctx context.Context, state *mapState) (mapPhase, *mapState, error) {
		state.m.Logger().DebugContext(ctx, "map",
			"mapper", state.mapper.Name(),
			"series", len(state.inputs),
			"config", state.config.String(),
		)
		for _, input := range state.inputs {
			state.plans = append(state.plans, windows.Plan(input.Sorted(), state.config))
		}
		return cont, state, nil
	}
}

func invokeMappers(cont mapPhase) mapPhase {
	return func(ctx context.Context, state *mapState) (mapPhase, *mapState, error) {
		for i, plan := range state.plans {
			input := state.inputs[i]
			output := gts.New(input.Name(), input.Labels())
			for window := range plan {
				readings, err := mappers.Invoke(state.m, state.mapper, window)
				if err != nil {
					return nil, state, err
				}
				for _, r := range readings {
					output, err = output.Append(r)
					if err != nil {
						return nil, state, err
					}
				}
			}
			state.outputs = append(state.outputs, output)
		}
		return cont, state, nil
	}
}

func assembleOutput(cont mapPhase) mapPhase {
	return func(ctx context.Context, state *mapState) (mapPhase, *mapState, error) {
		if state.single {
			state.m.Push(state.outputs[0])
			return cont, state, nil
		}
		items := make([]values.Value, len(state.outputs))
		for i, output := range state.outputs {
			items[i] = output
		}
		state.m.Push(values.NewList(items...))
		return cont, state, nil
	}
}
