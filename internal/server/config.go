package server

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/cardhouse/dealerschoice/internal/game"
)

// Config is the complete host configuration
type Config struct {
	Server Settings      `hcl:"server,block"`
	Tables []TableConfig `hcl:"table,block"`
}

// Settings contains host-level configuration
type Settings struct {
	Address        string `hcl:"address,optional"`
	Port           int    `hcl:"port,optional"`
	LogLevel       string `hcl:"log_level,optional"`
	HistoryDB      string `hcl:"history_db,optional"`
	ActionTimeout  int    `hcl:"action_timeout_seconds,optional"`
	Seed           int64  `hcl:"seed,optional"`
}

// TableConfig defines one table and its stakes
type TableConfig struct {
	Name          string `hcl:"name,label"`
	Game          string `hcl:"game"`
	Seats         int    `hcl:"seats,optional"`
	StartingChips int    `hcl:"starting_chips,optional"`
	Ante          int    `hcl:"ante,optional"`
	SmallBlind    int    `hcl:"small_blind,optional"`
	BigBlind      int    `hcl:"big_blind,optional"`
	MinBet        int    `hcl:"min_bet,optional"`
	SmallBet      int    `hcl:"small_bet,optional"`
	BigBet        int    `hcl:"big_bet,optional"`
	BringIn       int    `hcl:"bring_in,optional"`
	BuyPrice      int    `hcl:"buy_price,optional"`
	MaxRaises     int    `hcl:"max_raises,optional"`
	// CoveragePause is the top-up window, in seconds, granted to seats
	// that cannot cover a carried pot before the next hand deals.
	CoveragePause int `hcl:"coverage_pause_seconds,optional"`
}

// Stakes converts the table block into engine stakes
func (t TableConfig) Stakes() game.Stakes {
	return game.Stakes{
		Ante:       t.Ante,
		SmallBlind: t.SmallBlind,
		BigBlind:   t.BigBlind,
		MinBet:     t.MinBet,
		SmallBet:   t.SmallBet,
		BigBet:     t.BigBet,
		BringIn:    t.BringIn,
		BuyPrice:   t.BuyPrice,
		MaxRaises:  t.MaxRaises,
	}
}

// DefaultConfig returns the configuration used when no file exists
func DefaultConfig() *Config {
	return &Config{
		Server: Settings{
			Address:       "localhost",
			Port:          8080,
			LogLevel:      "info",
			HistoryDB:     "dealerschoice.db",
			ActionTimeout: 30,
		},
		Tables: []TableConfig{
			{
				Name:          "main",
				Game:          "texas-holdem",
				Seats:         6,
				StartingChips: 1000,
				SmallBlind:    5,
				BigBlind:      10,
				CoveragePause: 30,
			},
		},
	}
}

// LoadConfig loads host configuration from an HCL file. A missing file
// yields the defaults.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config: %s", diags.Error())
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.Server.Address == "" {
		c.Server.Address = def.Server.Address
	}
	if c.Server.Port == 0 {
		c.Server.Port = def.Server.Port
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = def.Server.LogLevel
	}
	if c.Server.HistoryDB == "" {
		c.Server.HistoryDB = def.Server.HistoryDB
	}
	if c.Server.ActionTimeout == 0 {
		c.Server.ActionTimeout = def.Server.ActionTimeout
	}
	for i := range c.Tables {
		if c.Tables[i].Seats == 0 {
			c.Tables[i].Seats = 6
		}
		if c.Tables[i].StartingChips == 0 {
			c.Tables[i].StartingChips = 1000
		}
		if c.Tables[i].CoveragePause == 0 {
			c.Tables[i].CoveragePause = 30
		}
	}
}

// Validate rejects configurations the engine cannot run
func (c *Config) Validate() error {
	if len(c.Tables) == 0 {
		return fmt.Errorf("config defines no tables")
	}
	seen := make(map[string]bool)
	for _, t := range c.Tables {
		if seen[t.Name] {
			return fmt.Errorf("duplicate table name %q", t.Name)
		}
		seen[t.Name] = true

		gt, err := game.ParseGameType(t.Game)
		if err != nil {
			return fmt.Errorf("table %q: %w", t.Name, err)
		}
		rules, err := game.RulesFor(gt)
		if err != nil {
			return fmt.Errorf("table %q: %w", t.Name, err)
		}
		if t.Seats < rules.MinPlayers || t.Seats > rules.MaxPlayers {
			return fmt.Errorf("table %q: %d seats outside %d..%d for %s",
				t.Name, t.Seats, rules.MinPlayers, rules.MaxPlayers, t.Game)
		}
		if t.StartingChips <= 0 {
			return fmt.Errorf("table %q: starting chips must be positive", t.Name)
		}
	}
	return nil
}
