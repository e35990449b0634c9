package pipeline

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/EvanDorsky/3dprint-gcode-speedup/internal/config"
	"github.com/EvanDorsky/3dprint-gcode-speedup/internal/gcode"
)

// Change records one line rewritten by a rule. Position is zero-based.
type Change struct {
	Rule     string
	Position int
	Before   string
	After    string
}

// Result is the output of a successful run.
type Result struct {
	Text    string
	Changes []Change
	// Skipped lists optional rules whose lines were missing.
	Skipped []string
}

// Pipeline applies its rules, in order, to a whole G-code document.
type Pipeline struct {
	rules  []Rule
	logger *zap.Logger
}

// New builds the default pipeline with modes and the mesh load line taken
// from cfg. Rules not named in cfg stay required.
func New(logger *zap.Logger, cfg config.Config) *Pipeline {
	meshLoad := cfg.MeshLoad
	if meshLoad == "" {
		meshLoad = config.DefaultMeshLoad
	}

	rules := DefaultRules(meshLoad)
	for i := range rules {
		rules[i].Mode = cfg.ModeFor(rules[i].Name)
	}
	return NewWithRules(logger, rules...)
}

func NewWithRules(logger *zap.Logger, rules ...Rule) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{rules: rules, logger: logger}
}

func (p *Pipeline) Rules() []Rule {
	return p.rules
}

// Run transforms text. On error no output is produced, so callers must not
// write anything back.
func (p *Pipeline) Run(text string) (*Result, error) {
	doc := gcode.NewDocument(text)
	result := &Result{}

	for _, rule := range p.rules {
		if rule.Mode == config.ModeOff {
			p.logger.Debug("rule disabled", zap.String("rule", rule.Name))
			continue
		}

		found, err := p.locate(doc, rule)
		if err != nil {
			if rule.Mode == config.ModeOptional {
				p.logger.Info("skipping optional rule", zap.String("rule", rule.Name), zap.Error(err))
				result.Skipped = append(result.Skipped, rule.Name)
				continue
			}
			return nil, fmt.Errorf("rule %s: %w", rule.Name, err)
		}

		before := doc.Lines()
		if err := rule.Apply(doc, found); err != nil {
			return nil, fmt.Errorf("rule %s: %w", rule.Name, err)
		}
		changes := diff(rule.Name, before, doc.Lines())
		for _, c := range changes {
			p.logger.Debug("line rewritten",
				zap.String("rule", c.Rule),
				zap.Int("line", c.Position+1),
				zap.String("before", c.Before),
				zap.String("after", c.After),
			)
		}
		result.Changes = append(result.Changes, changes...)
	}

	result.Text = doc.String()
	return result, nil
}

// locate runs every lookup of rule before any of its edits.
func (p *Pipeline) locate(doc *gcode.Document, rule Rule) ([]*gcode.Line, error) {
	found := make([]*gcode.Line, 0, len(rule.Lookups))
	for _, lookup := range rule.Lookups {
		line, err := doc.FindOne(lookup.Term, lookup.Where)
		if err != nil {
			return nil, fmt.Errorf("lookup %s: %w", lookup.Name, err)
		}
		found = append(found, line)
	}
	return found, nil
}

func diff(rule string, before, after []string) []Change {
	var changes []Change
	for i := range before {
		if before[i] != after[i] {
			changes = append(changes, Change{
				Rule:     rule,
				Position: i,
				Before:   before[i],
				After:    after[i],
			})
		}
	}
	return changes
}
