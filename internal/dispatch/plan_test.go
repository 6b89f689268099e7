package dispatch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danieljhkim/homelab/internal/catalog"
	"github.com/danieljhkim/homelab/internal/compose"
)

func render(invs []compose.Invocation) []string {
	out := make([]string, 0, len(invs))
	for _, inv := range invs {
		out = append(out, strings.Join(inv.Files, ",")+": "+strings.Join(inv.Args, " "))
	}
	return out
}

func TestParseAction(t *testing.T) {
	cat := catalog.Default()

	for _, tok := range []string{"start", "stop", "restart", "status", "logs", "update", "pull", "reset", "health", "quantum", "web3"} {
		a, err := ParseAction(cat, tok)
		require.NoError(t, err, tok)
		assert.Equal(t, Action(tok), a)
	}

	for _, tok := range []string{"", "destroy", "core", "START", "all"} {
		_, err := ParseAction(cat, tok)
		assert.ErrorIs(t, err, ErrUnknownAction, tok)
	}
}

func TestLifecycleActions_AreReservedStackNames(t *testing.T) {
	for _, a := range LifecycleActions {
		assert.Contains(t, catalog.ReservedStackNames, string(a))
	}
}

func TestBuildPlan(t *testing.T) {
	cat := catalog.Default()

	tests := []struct {
		name   string
		action Action
		target string
		opts   Options
		want   []string
	}{
		{
			name:   "start defaults to core",
			action: ActionStart,
			want:   []string{"docker-compose.yml: up -d"},
		},
		{
			name:   "stop stack",
			action: ActionStop,
			target: "monitoring",
			want:   []string{"docker-compose.monitoring.yml: down"},
		},
		{
			name:   "stop single service",
			action: ActionStop,
			target: "geth",
			want:   []string{"docker-compose.blockchain.yml: stop geth"},
		},
		{
			name:   "restart service uses compose name",
			action: ActionRestart,
			target: "base-wallet",
			want:   []string{"docker-compose.base.yml: restart base-wallet-cli"},
		},
		{
			name:   "status",
			action: ActionStatus,
			target: "web3",
			want:   []string{"docker-compose.web3.yml: ps"},
		},
		{
			name:   "logs default tail",
			action: ActionLogs,
			want:   []string{"docker-compose.yml: logs --tail=100"},
		},
		{
			name:   "logs follow service",
			action: ActionLogs,
			target: "jellyfin",
			opts:   Options{Tail: 20, Follow: true},
			want:   []string{"docker-compose.yml: logs --tail=20 -f jellyfin"},
		},
		{
			name:   "update pulls then recreates",
			action: ActionUpdate,
			target: "quantum",
			want: []string{
				"docker-compose.quantum.yml: pull",
				"docker-compose.quantum.yml: up -d",
			},
		},
		{
			name:   "pull service",
			action: ActionPull,
			target: "ollama",
			want:   []string{"docker-compose.yml: pull ollama"},
		},
		{
			name:   "reset",
			action: ActionReset,
			target: "core",
			want:   []string{"docker-compose.yml: down -v --remove-orphans"},
		},
		{
			name:   "health has no invocations",
			action: ActionHealth,
			want:   []string{},
		},
		{
			name:   "stack verb defaults to up",
			action: Action("quantum"),
			want:   []string{"docker-compose.quantum.yml: up -d"},
		},
		{
			name:   "stack verb with sub-verb and service",
			action: Action("blockchain"),
			target: "lighthouse",
			opts:   Options{SubVerb: "logs", Tail: 5},
			want:   []string{"docker-compose.blockchain.yml: logs --tail=5 lighthouse"},
		},
		{
			name:   "stack verb down",
			action: Action("superchain"),
			opts:   Options{SubVerb: "down"},
			want:   []string{"docker-compose.superchain.yml: down"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := BuildPlan(cat, tt.action, tt.target, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, render(plan.Invocations))
		})
	}
}

func TestBuildPlan_AllOrdering(t *testing.T) {
	cat := catalog.Default()

	start, err := BuildPlan(cat, ActionStart, catalog.AllTarget, Options{})
	require.NoError(t, err)
	require.Len(t, start.Invocations, len(cat.Stacks))
	assert.Equal(t, []string{"docker-compose.yml"}, start.Invocations[0].Files)
	assert.Equal(t, cat.StackNames(), start.Stacks())

	for _, action := range []Action{ActionStop, ActionReset} {
		plan, err := BuildPlan(cat, action, catalog.AllTarget, Options{})
		require.NoError(t, err)
		require.Len(t, plan.Invocations, len(cat.Stacks))
		last := plan.Invocations[len(plan.Invocations)-1]
		assert.Equal(t, []string{"docker-compose.yml"}, last.Files, "%s must take core down last", action)
	}
}

func TestBuildPlan_CarriesProjectDir(t *testing.T) {
	plan, err := BuildPlan(catalog.Default(), ActionPull, "", Options{Dir: "/srv/homelab"})
	require.NoError(t, err)
	require.Len(t, plan.Invocations, 1)
	assert.Equal(t, "docker compose -f /srv/homelab/docker-compose.yml pull", plan.Invocations[0].String())
}

func TestBuildPlan_Errors(t *testing.T) {
	cat := catalog.Default()

	_, err := BuildPlan(cat, ActionStart, "nope", Options{})
	assert.ErrorIs(t, err, catalog.ErrUnknownTarget)

	_, err = BuildPlan(cat, Action("core"), "", Options{})
	assert.ErrorIs(t, err, ErrUnknownAction)

	_, err = BuildPlan(cat, Action("quantum"), "", Options{SubVerb: "explode"})
	assert.ErrorIs(t, err, ErrUnknownAction)

	_, err = BuildPlan(cat, Action("quantum"), "geth", Options{})
	assert.ErrorIs(t, err, catalog.ErrUnknownTarget)

	_, err = BuildPlan(cat, ActionStart, "", Options{SubVerb: "up"})
	assert.Error(t, err)

	_, err = BuildPlan(cat, ActionReset, "geth", Options{})
	assert.Error(t, err)

	_, err = BuildPlan(cat, ActionLogs, catalog.AllTarget, Options{Follow: true})
	assert.Error(t, err)

	_, err = BuildPlan(cat, ActionLogs, "", Options{Tail: -5})
	assert.ErrorContains(t, err, "--tail")

	_, err = BuildPlan(nil, ActionStart, "", Options{})
	assert.Error(t, err)
}

func TestPlan_Probes(t *testing.T) {
	cat := catalog.Default()

	health, err := BuildPlan(cat, ActionHealth, "", Options{})
	require.NoError(t, err)
	assert.Len(t, health.Probes(cat), len(cat.Services), "health sweeps every service by default")

	status, err := BuildPlan(cat, ActionStatus, "geth", Options{})
	require.NoError(t, err)
	probes := status.Probes(cat)
	require.Len(t, probes, 1)
	assert.Equal(t, "geth", probes[0].Name)

	start, err := BuildPlan(cat, ActionStart, "", Options{})
	require.NoError(t, err)
	assert.Empty(t, start.Probes(cat))
}
