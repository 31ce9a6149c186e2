// Package policy evaluates incoming chat messages against a Rego policy.
package policy

import (
	"context"
	"os"
	"sort"

	"github.com/open-policy-agent/opa/rego"
	"github.com/pkg/errors"
)

// Decisions returned by the policy.
const (
	DecisionAllow = "allow"
	DecisionBlock = "block"
)

// Input is the document the policy is evaluated against.
type Input struct {
	Message   string `json:"message"`
	MaxLength int    `json:"max_length"`
}

// Decision is the outcome of an evaluation.
type Decision struct {
	Decision string
	Reasons  []string
}

// Allowed reports whether the message may be answered.
func (d Decision) Allowed() bool {
	return d.Decision != DecisionBlock
}

// Engine is the OPA policy engine.
type Engine struct {
	query rego.PreparedEvalQuery
}

// NewEngine creates a new policy engine with the given policy content. The
// module must declare package chat_policy.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	r := rego.New(
		rego.Query("data.chat_policy"),
		rego.Module("chat_policy.rego", policyContent),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to prepare rego")
	}

	return &Engine{query: query}, nil
}

// NewEngineFromFile loads the policy at path, or DefaultPolicy when path is
// empty.
func NewEngineFromFile(ctx context.Context, path string) (*Engine, error) {
	if path == "" {
		return NewEngine(ctx, DefaultPolicy)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read policy %s", path)
	}
	return NewEngine(ctx, string(data))
}

// Evaluate checks a message against the policy.
func (e *Engine) Evaluate(ctx context.Context, input Input) (Decision, error) {
	results, err := e.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return Decision{}, errors.Wrap(err, "failed to evaluate policy")
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		return Decision{Decision: DecisionAllow}, nil
	}

	doc, ok := results[0].Expressions[0].Value.(map[string]interface{})
	if !ok {
		return Decision{}, errors.Errorf("unexpected policy document %T", results[0].Expressions[0].Value)
	}

	decision := Decision{Decision: DecisionAllow}
	if s, ok := doc["decision"].(string); ok {
		decision.Decision = s
	}
	if deny, ok := doc["deny"].([]interface{}); ok {
		for _, r := range deny {
			if s, ok := r.(string); ok {
				decision.Reasons = append(decision.Reasons, s)
			}
		}
		sort.Strings(decision.Reasons)
	}
	return decision, nil
}

// DefaultPolicy is the default policy content.
const DefaultPolicy = `
package chat_policy

import rego.v1

default decision := "allow"

decision := "block" if count(deny) > 0

deny contains "message is empty" if trim_space(input.message) == ""

deny contains msg if {
	count(input.message) > input.max_length
	msg := sprintf("message is longer than %d characters", [input.max_length])
}
`
