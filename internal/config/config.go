// Package config loads session settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/you-not-fish/cang/internal/coins"
	"github.com/you-not-fish/cang/internal/eval"
	"github.com/you-not-fish/cang/internal/quest"
	"github.com/you-not-fish/cang/internal/syntax"
)

// Config holds the settings of one session.
type Config struct {
	Balances Balances   `yaml:"balances"`
	Parser   ParserConf `yaml:"parser"`
	Eval     EvalConf   `yaml:"eval"`
	Quests   QuestConf  `yaml:"quests"`
	REPL     REPLConf   `yaml:"repl"`
	Path     string     `yaml:"-"` // file the config was read from; empty for Default
}

// Balances are the starting coin balances.
type Balances struct {
	Variable uint32 `yaml:"variable"`
	Function uint32 `yaml:"function"`
}

type ParserConf struct {
	BlockBodies bool `yaml:"block_bodies"`
}

type EvalConf struct {
	MaxDepth int `yaml:"max_depth"`
}

type QuestConf struct {
	Starter bool        `yaml:"starter"`
	Extra   []QuestSpec `yaml:"extra"`
}

type REPLConf struct {
	Prompt      string `yaml:"prompt"`
	HistoryFile string `yaml:"history_file"`
}

// QuestSpec describes a user-defined quest.
type QuestSpec struct {
	ID            string           `yaml:"id"`
	Title         string           `yaml:"title"`
	Description   string           `yaml:"description"`
	Difficulty    quest.Difficulty `yaml:"difficulty"`
	Objectives    []ObjectiveSpec  `yaml:"objectives"`
	Rewards       []coins.Reward   `yaml:"rewards"`
	Prerequisites []string         `yaml:"prerequisites"`
}

// ObjectiveSpec is one objective; Type selects which other fields apply.
type ObjectiveSpec struct {
	Type      string `yaml:"type"`
	Pattern   string `yaml:"pattern"`
	MinParams int    `yaml:"min_params"`
	Count     int    `yaml:"count"`
	Expected  string `yaml:"expected"`
	Name      string `yaml:"name"`
}

// Default returns the settings used when no file is given.
func Default() *Config {
	return &Config{
		Balances: Balances{Variable: coins.DefaultVariable, Function: coins.DefaultFunction},
		Eval:     EvalConf{MaxDepth: eval.DefaultMaxDepth},
		Quests:   QuestConf{Starter: true},
		REPL:     REPLConf{Prompt: "cang> ", HistoryFile: "~/.cang_history"},
	}
}

// Load reads a config file. Fields absent from the file keep their
// Default values; unknown fields are an error.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Decode reads YAML settings from r over Default. An empty document
// yields Default.
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ValidationError lists every problem found in a config.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

func (c *Config) validate() error {
	var errs ValidationError
	if c.Eval.MaxDepth < 0 {
		errs.Issues = append(errs.Issues, "eval.max_depth must not be negative")
	}
	seen := make(map[string]bool)
	for i, q := range c.Quests.Extra {
		where := fmt.Sprintf("quests.extra[%d]", i)
		if q.ID == "" {
			errs.Issues = append(errs.Issues, where+": id must be provided")
		} else if seen[q.ID] {
			errs.Issues = append(errs.Issues, fmt.Sprintf("%s: duplicate id %q", where, q.ID))
		}
		seen[q.ID] = true
		if len(q.Objectives) == 0 {
			errs.Issues = append(errs.Issues, where+": at least one objective is required")
		}
		for j, o := range q.Objectives {
			if _, err := o.Objective(); err != nil {
				errs.Issues = append(errs.Issues, fmt.Sprintf("%s.objectives[%d]: %v", where, j, err))
			}
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// Objective builds the quest objective described by o.
func (o ObjectiveSpec) Objective() (quest.Objective, error) {
	switch strings.ToLower(o.Type) {
	case "execute_program":
		if o.Pattern == "" {
			return nil, fmt.Errorf("execute_program needs a pattern")
		}
		return quest.ExecuteProgram{Pattern: o.Pattern}, nil
	case "define_function":
		return quest.DefineFunction{MinParams: o.MinParams}, nil
	case "use_variables":
		return quest.UseVariables{Count: o.Count}, nil
	case "produce_output":
		return quest.ProduceOutput{Expected: o.Expected}, nil
	case "create_variable":
		return quest.CreateVariable{Name: o.Name}, nil
	case "call_function":
		return quest.CallFunction{Name: o.Name}, nil
	case "perform_arithmetic":
		return quest.PerformArithmetic{}, nil
	case "":
		return nil, fmt.Errorf("objective type must be provided")
	}
	return nil, fmt.Errorf("unknown objective type %q", o.Type)
}

// Quest builds the quest described by s.
func (s QuestSpec) Quest() (*quest.Quest, error) {
	objs := make([]quest.Objective, 0, len(s.Objectives))
	for _, o := range s.Objectives {
		obj, err := o.Objective()
		if err != nil {
			return nil, fmt.Errorf("quest %s: %w", s.ID, err)
		}
		objs = append(objs, obj)
	}
	title := s.Title
	if title == "" {
		title = s.ID
	}
	return quest.New(s.ID, title, s.Description, s.Difficulty, objs, s.Rewards, s.Prerequisites...), nil
}

// QuestManager returns a manager with the starter quests, if enabled,
// followed by the extra quests.
func (c *Config) QuestManager() (*quest.Manager, error) {
	m := quest.NewManager()
	if c.Quests.Starter {
		for _, q := range quest.StarterQuests() {
			m.Add(q)
		}
	}
	for _, s := range c.Quests.Extra {
		q, err := s.Quest()
		if err != nil {
			return nil, err
		}
		if !m.Add(q) {
			return nil, fmt.Errorf("quest %s: id already in use", s.ID)
		}
	}
	return m, nil
}

// Purse returns a purse holding the starting balances.
func (c *Config) Purse() *coins.Purse {
	return coins.NewPurseWith(c.Balances.Variable, c.Balances.Function)
}

// Mode returns the parser mode selected by the config.
func (c *Config) Mode() syntax.Mode {
	var m syntax.Mode
	if c.Parser.BlockBodies {
		m |= syntax.BlockBodies
	}
	return m
}

// HistoryPath returns REPL.HistoryFile with a leading "~/" expanded.
// It returns "" when history is disabled.
func (c *Config) HistoryPath() string {
	p := c.REPL.HistoryFile
	if rest, ok := strings.CutPrefix(p, "~/"); ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		return filepath.Join(home, rest)
	}
	return p
}
