package dispatch

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/danieljhkim/homelab/internal/catalog"
	"github.com/danieljhkim/homelab/internal/compose"
)

// DefaultLogTail is used when Options.Tail is zero.
const DefaultLogTail = 100

// Options tunes how a plan is built.
type Options struct {
	Dir     string // project directory holding the Compose files
	Tail    int    // logs --tail
	Follow  bool   // logs -f
	SubVerb string // stack actions only; empty means up
}

// Plan is the ordered set of invocations for one action.
type Plan struct {
	Action      Action
	Selection   catalog.Selection
	Invocations []compose.Invocation
}

// Probes returns the services swept after the invocations run.
func (p *Plan) Probes(cat *catalog.Catalog) []catalog.Service {
	if !p.Action.Probes() {
		return nil
	}
	return cat.ProbeTargets(p.Selection)
}

// Stacks returns the selected stack names in plan order.
func (p *Plan) Stacks() []string {
	names := make([]string, 0, len(p.Selection.Stacks))
	for _, st := range p.Selection.Stacks {
		names = append(names, st.Name)
	}
	return names
}

// BuildPlan resolves action and target against cat. It has no side effects.
//
// For lifecycle actions target is "", "all", a stack or a service. For stack
// actions target optionally names one service of that stack and opts.SubVerb
// picks the Compose verb.
func BuildPlan(cat *catalog.Catalog, action Action, target string, opts Options) (*Plan, error) {
	if cat == nil {
		return nil, fmt.Errorf("catalog required")
	}
	if opts.Tail < 0 {
		return nil, fmt.Errorf("--tail must be zero or positive, got %d", opts.Tail)
	}

	verbs, sel, err := resolve(cat, action, target, opts)
	if err != nil {
		return nil, err
	}

	if opts.Follow && len(sel.Stacks) > 1 {
		return nil, fmt.Errorf("--follow needs a single stack, %d selected", len(sel.Stacks))
	}
	if sel.Service != nil && containsVerb(verbs, "reset") {
		return nil, fmt.Errorf("%s removes volumes for a whole stack; target %q is a service", action, sel.Service.Name)
	}

	stacks := sel.Stacks
	if reversesOrder(action) {
		stacks = reversed(stacks)
		sel.Stacks = stacks
	}

	plan := &Plan{Action: action, Selection: sel}
	for _, st := range stacks {
		for _, verb := range verbs {
			plan.Invocations = append(plan.Invocations, compose.Invocation{
				Dir:   opts.Dir,
				Files: []string{st.File},
				Args:  argsFor(verb, sel.Service, opts),
			})
		}
	}
	return plan, nil
}

func resolve(cat *catalog.Catalog, action Action, target string, opts Options) ([]string, catalog.Selection, error) {
	if action.IsLifecycle() {
		if opts.SubVerb != "" {
			return nil, catalog.Selection{}, fmt.Errorf("%s does not take a sub-verb", action)
		}
		if action == ActionHealth && strings.TrimSpace(target) == "" {
			target = catalog.AllTarget
		}
		sel, err := cat.Resolve(target)
		if err != nil {
			return nil, catalog.Selection{}, err
		}
		return lifecycleVerbs(action), sel, nil
	}

	st, ok := cat.Stack(string(action))
	if !ok || !st.Optional {
		return nil, catalog.Selection{}, fmt.Errorf("%w %q", ErrUnknownAction, action)
	}
	verb := opts.SubVerb
	if verb == "" {
		verb = "up"
	}
	if !isStackVerb(verb) {
		return nil, catalog.Selection{}, fmt.Errorf("%w %s %q (valid: %s)", ErrUnknownAction, action, verb, strings.Join(StackVerbs, ", "))
	}

	sel := catalog.Selection{Stacks: []catalog.Stack{st}}
	if target = strings.TrimSpace(target); target != "" {
		svc, ok := cat.Service(target)
		if !ok || svc.Stack != st.Name {
			return nil, catalog.Selection{}, fmt.Errorf("%w: %s is not a service of stack %s", catalog.ErrUnknownTarget, target, st.Name)
		}
		sel.Service = &svc
	}
	return []string{verb}, sel, nil
}

func lifecycleVerbs(action Action) []string {
	switch action {
	case ActionStart:
		return []string{"up"}
	case ActionStop:
		return []string{"down"}
	case ActionRestart:
		return []string{"restart"}
	case ActionStatus:
		return []string{"ps"}
	case ActionLogs:
		return []string{"logs"}
	case ActionUpdate:
		return []string{"pull", "up"}
	case ActionPull:
		return []string{"pull"}
	case ActionReset:
		return []string{"reset"}
	default:
		// health only probes
		return nil
	}
}

// argsFor maps an internal verb to Compose arguments, narrowed to svc when set.
func argsFor(verb string, svc *catalog.Service, opts Options) []string {
	var args []string
	switch verb {
	case "up":
		args = []string{"up", "-d"}
	case "down":
		if svc != nil {
			// down has no per-service form
			return []string{"stop", svc.ComposeService()}
		}
		return []string{"down"}
	case "reset":
		return []string{"down", "-v", "--remove-orphans"}
	case "logs":
		tail := opts.Tail
		if tail <= 0 {
			tail = DefaultLogTail
		}
		args = []string{"logs", "--tail=" + strconv.Itoa(tail)}
		if opts.Follow {
			args = append(args, "-f")
		}
	default:
		args = []string{verb}
	}
	if svc != nil {
		args = append(args, svc.ComposeService())
	}
	return args
}

func reversesOrder(action Action) bool {
	return action == ActionStop || action == ActionReset
}

func reversed(stacks []catalog.Stack) []catalog.Stack {
	out := make([]catalog.Stack, len(stacks))
	for i, st := range stacks {
		out[len(stacks)-1-i] = st
	}
	return out
}

func containsVerb(verbs []string, verb string) bool {
	for _, v := range verbs {
		if v == verb {
			return true
		}
	}
	return false
}
