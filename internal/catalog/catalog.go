package catalog

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
)

// ProbeMethod selects how a service's liveness probe is sent.
type ProbeMethod string

const (
	MethodGET     ProbeMethod = "get"
	MethodJSONRPC ProbeMethod = "jsonrpc"
	MethodTLS     ProbeMethod = "tls"
)

// DefaultRPCMethod is called by JSON-RPC probes that do not name one.
const DefaultRPCMethod = "eth_blockNumber"

// CoreStack is selected when no target is given.
const CoreStack = "core"

// AllTarget selects every stack in the catalog.
const AllTarget = "all"

// ReservedStackNames cannot name a stack: stacks double as commands and
// would shadow these.
var ReservedStackNames = []string{
	AllTarget,
	"start", "stop", "restart", "status", "logs",
	"update", "pull", "reset", "health",
}

// ErrUnknownTarget is returned when a target names neither a stack nor a service.
var ErrUnknownTarget = errors.New("unknown stack or service")

// Stack is a group of containers defined by one Compose file.
type Stack struct {
	Name        string `yaml:"name"`
	File        string `yaml:"file"`
	Optional    bool   `yaml:"optional"`
	Description string `yaml:"description,omitempty"`
}

// Service describes one probe-able container.
type Service struct {
	Name        string      `yaml:"name" json:"name"`
	Stack       string      `yaml:"stack" json:"stack"`
	Port        int         `yaml:"port" json:"port"`
	Path        string      `yaml:"path,omitempty" json:"path,omitempty"`
	Method      ProbeMethod `yaml:"method,omitempty" json:"method"`
	ComposeName string      `yaml:"compose_name,omitempty" json:"compose_name,omitempty"`
	RPCMethod   string      `yaml:"rpc_method,omitempty" json:"rpc_method,omitempty"`
}

// ComposeService returns the name the service has inside its Compose file.
func (s Service) ComposeService() string {
	if s.ComposeName != "" {
		return s.ComposeName
	}
	return s.Name
}

// ProbeRPCMethod returns the JSON-RPC method a probe should call.
func (s Service) ProbeRPCMethod() string {
	if s.RPCMethod != "" {
		return s.RPCMethod
	}
	return DefaultRPCMethod
}

// Catalog is the static table of stacks and services.
// Stack order is significant: it is the start order.
type Catalog struct {
	Stacks   []Stack
	Services []Service
}

// Stack looks up a stack by name.
func (c *Catalog) Stack(name string) (Stack, bool) {
	for _, s := range c.Stacks {
		if s.Name == name {
			return s, true
		}
	}
	return Stack{}, false
}

// Service looks up a service by name or Compose service name.
func (c *Catalog) Service(name string) (Service, bool) {
	for _, s := range c.Services {
		if s.Name == name || s.ComposeService() == name {
			return s, true
		}
	}
	return Service{}, false
}

// ServicesIn returns the services of a stack in catalog order.
func (c *Catalog) ServicesIn(stack string) []Service {
	var out []Service
	for _, s := range c.Services {
		if s.Stack == stack {
			out = append(out, s)
		}
	}
	return out
}

// StackNames returns stack names in catalog order.
func (c *Catalog) StackNames() []string {
	names := make([]string, 0, len(c.Stacks))
	for _, s := range c.Stacks {
		names = append(names, s.Name)
	}
	return names
}

// OptionalStacks returns the stacks that are not started by default.
func (c *Catalog) OptionalStacks() []Stack {
	var out []Stack
	for _, s := range c.Stacks {
		if s.Optional {
			out = append(out, s)
		}
	}
	return out
}

// Selection is the result of resolving a user target.
type Selection struct {
	Stacks  []Stack
	Service *Service // nil when the whole stack is targeted
}

// Resolve maps a target to stacks and an optional service.
//
//	""        -> core stack
//	"all"     -> every stack, catalog order
//	<stack>   -> that stack
//	<service> -> the service's stack, scoped to the service
func (c *Catalog) Resolve(target string) (Selection, error) {
	target = strings.TrimSpace(target)
	switch target {
	case "":
		target = CoreStack
	case AllTarget:
		stacks := make([]Stack, len(c.Stacks))
		copy(stacks, c.Stacks)
		return Selection{Stacks: stacks}, nil
	}

	if st, ok := c.Stack(target); ok {
		return Selection{Stacks: []Stack{st}}, nil
	}
	if svc, ok := c.Service(target); ok {
		st, ok := c.Stack(svc.Stack)
		if !ok {
			return Selection{}, fmt.Errorf("service %s references unknown stack %s", svc.Name, svc.Stack)
		}
		return Selection{Stacks: []Stack{st}, Service: &svc}, nil
	}
	return Selection{}, fmt.Errorf("%w: %s (valid: all, %s)", ErrUnknownTarget, target, strings.Join(c.StackNames(), ", "))
}

// ProbeTargets returns the services a health sweep covers for a selection.
func (c *Catalog) ProbeTargets(sel Selection) []Service {
	if sel.Service != nil {
		return []Service{*sel.Service}
	}
	var out []Service
	for _, st := range sel.Stacks {
		out = append(out, c.ServicesIn(st.Name)...)
	}
	return out
}

// Validate checks the table for duplicate names, dangling stacks, bad ports and methods.
func (c *Catalog) Validate() error {
	stacks := make(map[string]bool)
	for _, s := range c.Stacks {
		if strings.TrimSpace(s.Name) == "" {
			return fmt.Errorf("stack with empty name")
		}
		if slices.Contains(ReservedStackNames, s.Name) {
			return fmt.Errorf("stack name %q is reserved", s.Name)
		}
		if stacks[s.Name] {
			return fmt.Errorf("duplicate stack %q", s.Name)
		}
		if strings.TrimSpace(s.File) == "" {
			return fmt.Errorf("stack %q has no compose file", s.Name)
		}
		stacks[s.Name] = true
	}

	services := make(map[string]bool)
	for _, s := range c.Services {
		if strings.TrimSpace(s.Name) == "" {
			return fmt.Errorf("service with empty name")
		}
		if services[s.Name] {
			return fmt.Errorf("duplicate service %q", s.Name)
		}
		services[s.Name] = true
		if !stacks[s.Stack] {
			return fmt.Errorf("service %q: unknown stack %q", s.Name, s.Stack)
		}
		if s.Port < 1 || s.Port > 65535 {
			return fmt.Errorf("service %q: port %d out of range", s.Name, s.Port)
		}
		switch s.Method {
		case MethodGET, MethodJSONRPC, MethodTLS:
		default:
			return fmt.Errorf("service %q: unknown probe method %q (valid: get, jsonrpc, tls)", s.Name, s.Method)
		}
	}
	return nil
}

// SortedServiceNames returns every service name sorted alphabetically.
func (c *Catalog) SortedServiceNames() []string {
	names := make([]string, 0, len(c.Services))
	for _, s := range c.Services {
		names = append(names, s.Name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a deep copy of the catalog.
func (c *Catalog) Clone() *Catalog {
	out := &Catalog{
		Stacks:   make([]Stack, len(c.Stacks)),
		Services: make([]Service, len(c.Services)),
	}
	copy(out.Stacks, c.Stacks)
	copy(out.Services, c.Services)
	return out
}
