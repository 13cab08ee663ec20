package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

type Check struct {
	Name   string `yaml:"name"`
	Method string `yaml:"method"`
	Path   string `yaml:"path"`
	Expect int    `yaml:"expect"`
}

type Plan struct {
	Checks []Check `yaml:"checks"`
}

var suites = map[string][]Check{
	"manager": {
		{Name: "manager team stats", Path: "/api/manager/team-stats"},
		{Name: "manager projects", Path: "/api/manager/projects"},
	},
	"spc-manager": {
		{Name: "spc manager dashboard", Path: "/api/spc-manager/dashboard"},
		{Name: "spc manager team", Path: "/api/spc-manager/team"},
		{Name: "spc manager projects", Path: "/api/spc-manager/projects"},
	},
	"spc": {
		{Name: "spc dashboard", Path: "/api/spc/dashboard"},
	},
}

var suiteOrder = []string{"manager", "spc-manager", "spc"}

func SuiteNames() []string {
	return append(slices.Clone(suiteOrder), "all")
}

// Suite returns the built-in checks of name; "all" concatenates every suite.
func Suite(name string) (Plan, error) {
	if name == "all" {
		var p Plan
		for _, n := range suiteOrder {
			p.Checks = append(p.Checks, suites[n]...)
		}
		return p.normalized(), nil
	}
	checks, ok := suites[name]
	if !ok {
		return Plan{}, fmt.Errorf("unknown suite %q (have %v)", name, SuiteNames())
	}
	return Plan{Checks: slices.Clone(checks)}.normalized(), nil
}

func LoadPlan(path string) (Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Plan{}, fmt.Errorf("read plan: %w", err)
	}
	return ParsePlan(data)
}

func ParsePlan(data []byte) (Plan, error) {
	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Plan{}, fmt.Errorf("parse plan: %w", err)
	}
	if len(p.Checks) == 0 {
		return Plan{}, fmt.Errorf("plan has no checks")
	}
	for i, c := range p.Checks {
		if c.Path == "" || c.Path[0] != '/' {
			return Plan{}, fmt.Errorf("check %d (%s): path must start with /", i, c.Name)
		}
	}
	return p.normalized(), nil
}

func (p Plan) normalized() Plan {
	for i := range p.Checks {
		c := &p.Checks[i]
		if c.Method == "" {
			c.Method = http.MethodGet
		}
		if c.Expect == 0 {
			c.Expect = http.StatusOK
		}
		if c.Name == "" {
			c.Name = c.Method + " " + c.Path
		}
	}
	return p
}

type Outcome struct {
	Check  Check
	Result Result
	Err    error
}

func (o Outcome) Passed() bool {
	return o.Err == nil && o.Result.Status == o.Check.Expect
}

// Run executes every check in order. Transport errors are recorded per
// check rather than aborting the run.
func (c *Client) Run(ctx context.Context, p Plan) []Outcome {
	out := make([]Outcome, 0, len(p.Checks))
	for _, check := range p.Checks {
		res, err := c.Do(ctx, check.Method, check.Path, nil)
		out = append(out, Outcome{Check: check, Result: res, Err: err})
	}
	return out
}
