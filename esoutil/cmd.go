/*
Copyright © 2020 the esoreader authors.
This file is part of esoreader.

esoreader is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

esoreader is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with esoreader.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package esoutil wires the esoreader core into a cobra/viper command
// line, the way inmaputil wires the inmap core for the InMAP binary.
package esoutil

import (
	"fmt"
	"os"
	"strings"

	"github.com/eplusio/esoreader"
	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gonum.org/v1/gonum/floats"
)

func floatsMean(x []float64) float64 { return floats.Sum(x) / float64(len(x)) }
func floatsMin(x []float64) float64  { return floats.Min(x) }
func floatsMax(x []float64) float64  { return floats.Max(x) }

// Cfg holds configuration information, layering command-line flags,
// environment variables (prefixed ESOREAD_), and an optional TOML
// config file via viper.
//
// Grounded on inmaputil/cmd.go's Cfg: an embedded *viper.Viper plus
// the cobra command tree it configures.
type Cfg struct {
	*viper.Viper

	Root, parseCmd, dictCmd, searchCmd, statsCmd *cobra.Command
}

var options = []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []func(*Cfg) *pflag.FlagSet
}{
	{
		name:       "config",
		usage:      "config is the path to a TOML configuration file.",
		defaultVal: "",
		flagsets:   []func(*Cfg) *pflag.FlagSet{func(c *Cfg) *pflag.FlagSet { return c.Root.PersistentFlags() }},
	},
	{
		name:       "ignore_peaks",
		usage:      "ignore_peaks, when true, skips collecting peak-value coordinates.",
		defaultVal: true,
		flagsets: []func(*Cfg) *pflag.FlagSet{
			func(c *Cfg) *pflag.FlagSet { return c.parseCmd.Flags() },
			func(c *Cfg) *pflag.FlagSet { return c.statsCmd.Flags() },
		},
	},
	{
		name:       "year",
		usage:      "year is accepted for configuration; it has no effect on parsing and is not carried into the parse result.",
		defaultVal: 0,
		flagsets:   []func(*Cfg) *pflag.FlagSet{func(c *Cfg) *pflag.FlagSet { return c.parseCmd.Flags() }},
	},
	{
		name:       "chunk_size",
		usage:      "chunk_size is the number of lines between progress ticks.",
		defaultVal: esoreader.DefaultChunkSize,
		flagsets: []func(*Cfg) *pflag.FlagSet{
			func(c *Cfg) *pflag.FlagSet { return c.Root.PersistentFlags() },
		},
	},
	{
		name:       "interval",
		usage:      "interval restricts a search to one reporting interval (timestep, hourly, daily, monthly, runperiod, annual).",
		defaultVal: "",
		flagsets:   []func(*Cfg) *pflag.FlagSet{func(c *Cfg) *pflag.FlagSet { return c.searchCmd.Flags() }},
	},
	{
		name:       "key",
		usage:      "key is a glob pattern matched against a variable's key (e.g. a zone name).",
		defaultVal: "",
		flagsets:   []func(*Cfg) *pflag.FlagSet{func(c *Cfg) *pflag.FlagSet { return c.searchCmd.Flags() }},
	},
	{
		name:       "type",
		usage:      "type is a glob pattern matched against a variable's reported quantity name.",
		defaultVal: "",
		flagsets:   []func(*Cfg) *pflag.FlagSet{func(c *Cfg) *pflag.FlagSet { return c.searchCmd.Flags() }},
	},
	{
		name:       "units",
		usage:      "units is a glob pattern matched against a variable's units string.",
		defaultVal: "",
		flagsets:   []func(*Cfg) *pflag.FlagSet{func(c *Cfg) *pflag.FlagSet { return c.searchCmd.Flags() }},
	},
	{
		name:       "series",
		usage:      "series, when set on stats, prints mean/min/max of one variable id's series instead of interval counts.",
		defaultVal: 0,
		flagsets:   []func(*Cfg) *pflag.FlagSet{func(c *Cfg) *pflag.FlagSet { return c.statsCmd.Flags() }},
	},
}

// InitializeConfig builds the esoread command tree and binds its
// flags through viper, the way inmaputil.InitializeConfig does for
// inmap.
func InitializeConfig() *Cfg {
	cfg := &Cfg{Viper: viper.New()}

	cfg.Root = &cobra.Command{
		Use:   "esoread",
		Short: "Read and inspect EnergyPlus .eso simulation result files.",
		Long: `esoread parses EnergyPlus .eso files into per-environment result
sets and offers a few inspection subcommands. Configuration can be set via
flags, ESOREAD_-prefixed environment variables, or a TOML file named with
--config.`,
		DisableAutoGenTag: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return setConfig(cfg)
		},
	}

	cfg.parseCmd = &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a file and print a per-environment summary.",
		Args:  cobra.ExactArgs(1),
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cfg, args[0])
		},
	}

	cfg.dictCmd = &cobra.Command{
		Use:   "dict [file]",
		Short: "Print the data dictionary of a file.",
		Args:  cobra.ExactArgs(1),
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDict(cfg, args[0])
		},
	}

	cfg.searchCmd = &cobra.Command{
		Use:   "search [file]",
		Short: "Search the dictionary of the first environment for matching variables.",
		Args:  cobra.ExactArgs(1),
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cfg, args[0])
		},
	}

	cfg.statsCmd = &cobra.Command{
		Use:   "stats [file]",
		Short: "Print per-interval step and variable counts for a file.",
		Args:  cobra.ExactArgs(1),
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cfg, args[0])
		},
	}

	cfg.Root.AddCommand(cfg.parseCmd, cfg.dictCmd, cfg.searchCmd, cfg.statsCmd)

	cfg.SetEnvPrefix("ESOREAD")
	cfg.AutomaticEnv()

	for _, option := range options {
		for i, mkSet := range option.flagsets {
			set := mkSet(cfg)
			if i != 0 {
				set.AddFlag(option.flagsets[0](cfg).Lookup(option.name))
				continue
			}
			switch v := option.defaultVal.(type) {
			case string:
				set.String(option.name, v, option.usage)
			case bool:
				set.Bool(option.name, v, option.usage)
			case int:
				set.Int(option.name, v, option.usage)
			default:
				panic(fmt.Errorf("esoutil: invalid option default type: %T", option.defaultVal))
			}
			cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}

	return cfg
}

// setConfig loads a TOML configuration file, if --config was given.
func setConfig(cfg *Cfg) error {
	if cfgPath := cfg.GetString("config"); cfgPath != "" {
		cfg.SetConfigFile(cfgPath)
		cfg.SetConfigType("toml")
		if err := cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("esoutil: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// parserConfig translates the bound viper values into an
// esoreader.ParserConfig. Values coming from a TOML file or an
// environment variable arrive untyped (interface{}); cast coerces
// them the same way inmaputil's options table coerces flag defaults,
// rather than trusting viper's own (version-pinned) coercion.
func (cfg *Cfg) parserConfig() esoreader.ParserConfig {
	ignorePeaks, _ := cast.ToBoolE(cfg.Get("ignore_peaks"))
	year, _ := cast.ToIntE(cfg.Get("year"))
	chunkSize, _ := cast.ToIntE(cfg.Get("chunk_size"))
	return esoreader.ParserConfig{
		IgnorePeaks: ignorePeaks,
		Year:        year,
		ChunkSize:   chunkSize,
		Logger:      logrus.StandardLogger(),
	}
}

func openTwice(path string) (*os.File, *os.File, error) {
	a, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	b, err := os.Open(path)
	if err != nil {
		a.Close()
		return nil, nil, err
	}
	return a, b, nil
}

func runParse(cfg *Cfg, path string) error {
	data, counter, err := openTwice(path)
	if err != nil {
		return err
	}
	defer data.Close()
	defer counter.Close()

	result, err := esoreader.ParseFile(data, counter, cfg.parserConfig())
	if err != nil {
		return err
	}
	for _, env := range result.Environments {
		if err := env.Dump(os.Stdout); err != nil {
			return err
		}
	}
	return nil
}

func runDict(cfg *Cfg, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	ls := esoreader.NewLineSource(f, nil, cfg.GetInt("chunk_size"))
	version, err := esoreader.ConsumePreamble(ls)
	if err != nil {
		return err
	}
	header, err := esoreader.NewHeaderParser(ls).Parse()
	if err != nil {
		return err
	}
	t := esoreader.Table{{"Id", "Interval", "Key", "Type", "Units"}}
	for _, iv := range header.Intervals() {
		for _, id := range header.Ids(iv) {
			v, _ := header.Get(iv, id)
			t = append(t, []string{
				fmt.Sprintf("%d", id), v.Interval.String(), v.Key, v.Type, v.Units,
			})
		}
	}
	fmt.Printf("version: %d, generated: %s\n", version.VersionCode, version.GeneratedAt)
	_, err = t.Tabbed(os.Stdout)
	return err
}

func runSearch(cfg *Cfg, path string) error {
	data, counter, err := openTwice(path)
	if err != nil {
		return err
	}
	defer data.Close()
	defer counter.Close()

	result, err := esoreader.ParseFile(data, counter, cfg.parserConfig())
	if err != nil {
		return err
	}
	if len(result.Environments) == 0 {
		return fmt.Errorf("esoutil: no environments found in %s", path)
	}
	env := result.Environments[0]

	var iv esoreader.Interval
	ivSet := false
	if tag := strings.TrimSpace(cfg.GetString("interval")); tag != "" {
		parsed, err := esoreader.ParseInterval(tag)
		if err != nil {
			return err
		}
		iv, ivSet = parsed, true
	}

	ids := env.Index.Lookup(iv, ivSet, cfg.GetString("key"), cfg.GetString("type"), cfg.GetString("units"))
	t := esoreader.Table{{"Id", "Interval", "Key", "Type", "Units"}}
	for _, id := range ids {
		for _, candidateIv := range env.Header.Intervals() {
			if v, ok := env.Header.Get(candidateIv, id); ok {
				t = append(t, []string{fmt.Sprintf("%d", id), v.Interval.String(), v.Key, v.Type, v.Units})
				break
			}
		}
	}
	_, err = t.Tabbed(os.Stdout)
	return err
}

func runStats(cfg *Cfg, path string) error {
	data, counter, err := openTwice(path)
	if err != nil {
		return err
	}
	defer data.Close()
	defer counter.Close()

	result, err := esoreader.ParseFile(data, counter, cfg.parserConfig())
	if err != nil {
		return err
	}

	if id := cfg.GetInt("series"); id != 0 {
		return printSeriesStats(result, id)
	}

	for _, env := range result.Environments {
		fmt.Printf("environment: %s\n", env.Name)
		if _, err := env.SummaryTable().Tabbed(os.Stdout); err != nil {
			return err
		}
	}
	return nil
}

// printSeriesStats prints descriptive statistics (mean/min/max) of
// one variable id's series in each environment, using gonum/floats
// over the core's already-materialized RawSeries -- a CLI-only
// convenience, never consulted by the core itself (spec.md's
// out-of-scope "peak outputs min/max selection" names the adjacent,
// but distinct, concern this does not touch).
func printSeriesStats(result *esoreader.Result, id int) error {
	for _, env := range result.Environments {
		for _, iv := range env.Header.Intervals() {
			if _, ok := env.Header.Get(iv, id); !ok {
				continue
			}
			series := env.Outputs.Get(iv, id)
			vals := make([]float64, 0, len(series))
			for _, v := range series {
				if !v.Missing {
					vals = append(vals, v.Num)
				}
			}
			if len(vals) == 0 {
				fmt.Printf("%s / %s / id %d: no reported values\n", env.Name, iv, id)
				continue
			}
			fmt.Printf("%s / %s / id %d: mean=%g min=%g max=%g (n=%d)\n",
				env.Name, iv, id, floatsMean(vals), floatsMin(vals), floatsMax(vals), len(vals))
		}
	}
	return nil
}
