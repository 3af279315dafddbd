package analytics

import (
	"fmt"

	"github.com/google/cel-go/cel"
)

// Rule is an operator-defined alert condition written as a CEL expression
// over report scalars, e.g. "margin_pct < 10.0 && total_revenue > 0.0".
// Rules come from configuration and are compiled once at startup.
type Rule struct {
	Name       string        `json:"name" mapstructure:"name"`
	Severity   AlertSeverity `json:"severity" mapstructure:"severity"`
	Title      string        `json:"title" mapstructure:"title"`
	Message    string        `json:"message" mapstructure:"message"`
	Expression string        `json:"expression" mapstructure:"expression"`
}

// RuleScalars are the variables a rule expression may reference. All values
// are float64 on the CEL side.
type RuleScalars struct {
	TotalCosts        float64
	TotalRevenue      float64
	NetResult         float64
	MarginPct         float64
	ROIPct            float64
	CostChangePct     float64
	RevenueChangePct  float64
	BirthCount        float64
	ActiveAnimals     float64
	AvgCostPerAnimal  float64
	AvgRevenuePerSale float64
}

func (s RuleScalars) activation() map[string]any {
	return map[string]any{
		"total_costs":          s.TotalCosts,
		"total_revenue":        s.TotalRevenue,
		"net_result":           s.NetResult,
		"margin_pct":           s.MarginPct,
		"roi_pct":              s.ROIPct,
		"cost_change_pct":      s.CostChangePct,
		"revenue_change_pct":   s.RevenueChangePct,
		"birth_count":          s.BirthCount,
		"active_animals":       s.ActiveAnimals,
		"avg_cost_per_animal":  s.AvgCostPerAnimal,
		"avg_revenue_per_sale": s.AvgRevenuePerSale,
	}
}

type compiledRule struct {
	rule    Rule
	program cel.Program
}

// RuleEngine evaluates configured rules against report scalars.
type RuleEngine struct {
	rules []compiledRule
}

// NewRuleEngine compiles the given rules. A rule that fails to compile is a
// configuration error and fails construction; silent misconfiguration would
// mean alerts that never fire.
func NewRuleEngine(rules []Rule) (*RuleEngine, error) {
	env, err := cel.NewEnv(
		cel.Variable("total_costs", cel.DoubleType),
		cel.Variable("total_revenue", cel.DoubleType),
		cel.Variable("net_result", cel.DoubleType),
		cel.Variable("margin_pct", cel.DoubleType),
		cel.Variable("roi_pct", cel.DoubleType),
		cel.Variable("cost_change_pct", cel.DoubleType),
		cel.Variable("revenue_change_pct", cel.DoubleType),
		cel.Variable("birth_count", cel.DoubleType),
		cel.Variable("active_animals", cel.DoubleType),
		cel.Variable("avg_cost_per_animal", cel.DoubleType),
		cel.Variable("avg_revenue_per_sale", cel.DoubleType),
	)
	if err != nil {
		return nil, fmt.Errorf("create rule environment: %w", err)
	}

	engine := &RuleEngine{rules: make([]compiledRule, 0, len(rules))}
	for _, r := range rules {
		ast, iss := env.Compile(r.Expression)
		if iss != nil && iss.Err() != nil {
			return nil, fmt.Errorf("compile rule %q: %w", r.Name, iss.Err())
		}
		if ast.OutputType() != cel.BoolType {
			return nil, fmt.Errorf("rule %q: expression must evaluate to bool, got %s", r.Name, ast.OutputType())
		}
		program, err := env.Program(ast)
		if err != nil {
			return nil, fmt.Errorf("program rule %q: %w", r.Name, err)
		}
		engine.rules = append(engine.rules, compiledRule{rule: r, program: program})
	}
	return engine, nil
}

// Evaluate runs every rule against the scalars and returns alerts for those
// that fire. Evaluation errors on a single rule skip that rule only; one bad
// rule must not take down report generation.
func (e *RuleEngine) Evaluate(scalars RuleScalars) []Alert {
	if e == nil || len(e.rules) == 0 {
		return nil
	}
	activation := scalars.activation()

	var alerts []Alert
	for _, cr := range e.rules {
		out, _, err := cr.program.Eval(activation)
		if err != nil {
			continue
		}
		fired, ok := out.Value().(bool)
		if !ok || !fired {
			continue
		}
		severity := cr.rule.Severity
		if severity == "" {
			severity = SeverityInfo
		}
		title := cr.rule.Title
		if title == "" {
			title = cr.rule.Name
		}
		alerts = append(alerts, Alert{
			Kind:     AlertKindCustomRule,
			Severity: severity,
			Title:    title,
			Message:  cr.rule.Message,
		})
	}
	return alerts
}
