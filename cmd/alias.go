package cmd

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/shot-cli/pkg/config"
	"github.com/kamal-hamza/shot-cli/pkg/ui"
	"github.com/kamal-hamza/shot-cli/pkg/vault"
)

var aliasForce bool

var (
	aliasNamePattern   = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_-]*$`)
	aliasPlaceholderRe = regexp.MustCompile(`\$(@|[1-9][0-9]*)`)
)

var aliasCmd = &cobra.Command{
	Use:   "alias",
	Short: "Manage command shortcuts",
	Long: `Manage shortcuts for shot command lines.

An alias maps one word to a command line stored in config.yaml. Inside the
command line $1, $2, ... pick single arguments given to the alias and $@
takes all of them. A command line without placeholders gets the arguments
appended. Built-in commands always win over an alias of the same name.

Examples:
  shot alias list
  shot alias add noir "list --tag noir"
  shot alias add ship "save $1 --tags final --copy"
  shot alias remove noir`,
}

var aliasListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Show every alias",
	Args:    cobra.NoArgs,
	RunE:    runAliasList,
}

var aliasAddCmd = &cobra.Command{
	Use:   "add <name> <command>",
	Short: "Define an alias",
	Long: `Define an alias in config.yaml.

The name may hold letters, digits, '-' and '_' and must not start with '-'.
Redefining an existing alias asks first unless --force is given.

Examples:
  shot alias add recent "list --sort updated"
  shot alias add backup "export ~/shot-backup.json"
  shot alias add wide "term shot wide"`,
	Args: cobra.ExactArgs(2),
	RunE: runAliasAdd,
}

var aliasRemoveCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm", "delete"},
	Short:   "Drop an alias",
	Args:    cobra.ExactArgs(1),
	RunE:    runAliasRemove,
}

func init() {
	aliasAddCmd.Flags().BoolVarP(&aliasForce, "force", "f", false, "Replace an existing alias without asking")

	aliasCmd.AddCommand(aliasListCmd, aliasAddCmd, aliasRemoveCmd)
}

func runAliasList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if len(appConfig.Aliases) == 0 {
		fmt.Fprintln(out, ui.FormatInfo("No aliases defined"))
		fmt.Fprintln(out, ui.FormatMuted("Define one with: shot alias add <name> <command>"))
		return nil
	}

	names := make([]string, 0, len(appConfig.Aliases))
	for name := range appConfig.Aliases {
		names = append(names, name)
	}
	slices.Sort(names)

	table := ui.NewTable([]ui.TableColumn{
		{Header: "Alias", Width: 12, MaxWidth: 20, Align: "left"},
		{Header: "Runs", Width: 30, MaxWidth: 60, Align: "left"},
	})
	for _, name := range names {
		table.AddRow([]string{name, "shot " + appConfig.Aliases[name]})
	}

	fmt.Fprintln(out, ui.FormatTitle("Aliases"))
	fmt.Fprintln(out)
	fmt.Fprint(out, table.Render())
	fmt.Fprintln(out)
	fmt.Fprintln(out, ui.FormatMuted(fmt.Sprintf("%d alias(es) in %s", len(names), appVault.ConfigPath)))
	return nil
}

func runAliasAdd(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	name, line := args[0], strings.TrimSpace(args[1])

	if err := validateAliasName(name); err != nil {
		return err
	}
	if isReservedCommand(name) {
		return fmt.Errorf("alias %q would shadow a built-in command", name)
	}
	if line == "" {
		return fmt.Errorf("alias %q needs a command", name)
	}

	fileCfg, err := loadConfigFile()
	if err != nil {
		return err
	}

	if prev, ok := fileCfg.Aliases[name]; ok && prev != line && !aliasForce {
		fmt.Fprintln(out, ui.FormatWarning(fmt.Sprintf("%s currently runs: shot %s", name, prev)))
		if !confirm(cmd, "Replace it?", false) {
			fmt.Fprintln(out, ui.FormatInfo("Alias left unchanged"))
			return nil
		}
	}

	fileCfg.Aliases[name] = line
	if err := fileCfg.Save(appVault.ConfigPath); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	appConfig.Aliases = fileCfg.Aliases

	fmt.Fprintln(out, ui.FormatSuccess(fmt.Sprintf("shot %s → shot %s", name, line)))
	return nil
}

func runAliasRemove(cmd *cobra.Command, args []string) error {
	name := args[0]

	fileCfg, err := loadConfigFile()
	if err != nil {
		return err
	}

	line, ok := fileCfg.Aliases[name]
	if !ok {
		return fmt.Errorf("no alias named %q", name)
	}
	delete(fileCfg.Aliases, name)

	if err := fileCfg.Save(appVault.ConfigPath); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	appConfig.Aliases = fileCfg.Aliases

	fmt.Fprintln(cmd.OutOrStdout(), ui.FormatSuccess(fmt.Sprintf("Removed %s (was: shot %s)", name, line)))
	return nil
}

// loadConfigFile reads config.yaml without SHOT_* overrides so that
// saving it back does not persist values that only came from the environment.
func loadConfigFile() (*config.Config, error) {
	cfg, err := config.Load(appVault.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if cfg.Aliases == nil {
		cfg.Aliases = make(map[string]string)
	}
	return cfg, nil
}

func validateAliasName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("alias name cannot be empty")
	case strings.HasPrefix(name, "-"):
		return fmt.Errorf("alias name %q cannot start with '-'", name)
	case !aliasNamePattern.MatchString(name):
		return fmt.Errorf("alias name %q may only contain letters, digits, '-' and '_'", name)
	}
	return nil
}

// isReservedCommand reports whether name is a registered command or one of
// its aliases. help and completion are added lazily by cobra.
func isReservedCommand(name string) bool {
	if name == "help" || name == "completion" {
		return true
	}
	for _, c := range rootCmd.Commands() {
		if c.Name() == name || c.HasAlias(name) {
			return true
		}
	}
	return false
}

// resolveAliasArgs rewrites the raw command line when its first word is a
// user alias. Flags and built-in commands are left alone.
func resolveAliasArgs(args []string) ([]string, bool) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") || isReservedCommand(args[0]) {
		return nil, false
	}

	v, err := vault.New()
	if err != nil {
		return nil, false
	}
	cfg, err := config.Load(v.ConfigPath)
	if err != nil {
		return nil, false
	}
	return TryResolveAlias(cfg, args[0], args[1:])
}

// TryResolveAlias expands name when cfg defines it as an alias.
func TryResolveAlias(cfg *config.Config, name string, args []string) ([]string, bool) {
	if cfg == nil {
		return nil, false
	}
	line, ok := cfg.Aliases[name]
	if !ok {
		return nil, false
	}
	return expandAlias(line, args), true
}

// expandAlias splits line into words and fills $N and $@ from args.
// Placeholders past the end of args expand to nothing.
func expandAlias(line string, args []string) []string {
	words := strings.Fields(line)
	if !aliasPlaceholderRe.MatchString(line) {
		return append(words, args...)
	}

	expanded := make([]string, 0, len(words))
	for _, w := range words {
		w = aliasPlaceholderRe.ReplaceAllStringFunc(w, func(ph string) string {
			if ph == "$@" {
				return strings.Join(args, " ")
			}
			n, _ := strconv.Atoi(ph[1:])
			if n > len(args) {
				return ""
			}
			return args[n-1]
		})
		if w != "" {
			expanded = append(expanded, w)
		}
	}
	return expanded
}
