package coordinator

import (
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"component-resolver/internal/provider"
	"component-resolver/pkg/logger"
)

// RemapRule rewrites the node_id of a request before resolution when When
// evaluates to true. When is an expr program over RemapEnv.
type RemapRule struct {
	Name   string
	When   string
	Target string
}

// RemapEnv is the environment remap expressions are evaluated against.
// NodeID is already in canonical lower snake case.
type RemapEnv struct {
	Provider    string
	NodeID      string
	DisplayName string
	Context     map[string]string
}

// BuiltinRemaps bridge concepts that are first-class on one provider but only
// part of the network container on another.
var BuiltinRemaps = []RemapRule{
	{
		Name:   "gcp-subnet-to-vpc",
		When:   `Provider == "gcp" && NodeID in ["subnet", "subnets", "public_subnet", "private_subnet", "subnetwork"]`,
		Target: "vpc",
	},
	{
		Name:   "gcp-vnet-to-vpc",
		When:   `Provider == "gcp" && NodeID in ["vnet", "virtual_network"]`,
		Target: "vpc",
	},
	{
		Name:   "aws-vnet-to-vpc",
		When:   `Provider == "aws" && NodeID in ["vnet", "virtual_network"]`,
		Target: "vpc",
	},
	{
		Name:   "azure-vpc-to-vnet",
		When:   `Provider == "azure" && NodeID in ["vpc", "virtual_network", "virtual_private_cloud"]`,
		Target: "vnet",
	},
	{
		Name:   "azure-subnet-variants",
		When:   `Provider == "azure" && NodeID in ["public_subnet", "private_subnet", "subnets"]`,
		Target: "subnet",
	},
}

type compiledRule struct {
	name    string
	program *vm.Program
	target  string
}

// remapper holds compiled rules; the first matching rule wins.
type remapper struct {
	rules []compiledRule
}

// newRemapper compiles rules once. Rules that fail to compile are logged and
// skipped.
func newRemapper(rules []RemapRule) *remapper {
	r := &remapper{}

	for _, rule := range rules {
		program, err := expr.Compile(rule.When, expr.Env(RemapEnv{}), expr.AsBool())
		if err != nil {
			logger.Warn("remap rule rejected", "rule", rule.Name, "expression", rule.When, "error", err)
			continue
		}

		r.rules = append(r.rules, compiledRule{name: rule.Name, program: program, target: rule.Target})
	}

	return r
}

// apply returns the rewritten node_id and the name of the rule that fired.
func (r *remapper) apply(p provider.Provider, nodeID string, req Request) (string, string, bool) {
	env := RemapEnv{
		Provider:    string(p),
		NodeID:      nodeID,
		DisplayName: req.DisplayName,
		Context:     req.Context,
	}

	for _, rule := range r.rules {
		out, err := expr.Run(rule.program, env)
		if err != nil {
			logger.Debug("remap rule failed", "rule", rule.name, "error", err)
			continue
		}

		if matched, ok := out.(bool); ok && matched && rule.target != nodeID {
			return rule.target, rule.name, true
		}
	}

	return nodeID, "", false
}

// count returns the number of usable rules.
func (r *remapper) count() int { return len(r.rules) }
