package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/ply/internal/adapters/playbook"
	"go.trai.ch/ply/internal/app"
)

type runFlags struct {
	inventory   string
	extraVars   []string
	tags        []string
	skipTags    []string
	limit       string
	forks       int
	check       bool
	diff        bool
	step        bool
	startAtTask string
	syntaxCheck bool
	listTasks   bool
	listHosts   bool
	noColor     bool
}

func (c *CLI) newRunCmd() *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run <playbook>...",
		Short: "Run playbooks against the inventory",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			extraVars, err := playbook.ParseExtraVars(flags.extraVars)
			if err != nil {
				return err
			}
			return c.app.Run(cmd.Context(), app.Options{
				Playbooks:   args,
				Inventory:   flags.inventory,
				ExtraVars:   extraVars,
				OnlyTags:    flags.tags,
				SkipTags:    flags.skipTags,
				Limit:       flags.limit,
				Forks:       flags.forks,
				Check:       flags.check,
				Diff:        flags.diff,
				Step:        flags.step,
				StartAtTask: flags.startAtTask,
				SyntaxCheck: flags.syntaxCheck,
				ListTasks:   flags.listTasks,
				ListHosts:   flags.listHosts,
				NoColor:     flags.noColor,
			})
		},
	}

	cmd.Flags().StringVarP(&flags.inventory, "inventory", "i", "", "Inventory file path")
	cmd.Flags().StringArrayVarP(&flags.extraVars, "extra-vars", "e", nil, "Extra variables as key=value, YAML/JSON, or @file")
	cmd.Flags().StringSliceVarP(&flags.tags, "tags", "t", nil, "Only run tasks tagged with these values")
	cmd.Flags().StringSliceVar(&flags.skipTags, "skip-tags", nil, "Skip tasks tagged with these values")
	cmd.Flags().StringVarP(&flags.limit, "limit", "l", "", "Restrict play hosts to this pattern")
	cmd.Flags().IntVarP(&flags.forks, "forks", "f", 0, "Maximum hosts converged in parallel")
	cmd.Flags().BoolVarP(&flags.check, "check", "C", false, "Dry run: report changes without applying them")
	cmd.Flags().BoolVarP(&flags.diff, "diff", "D", false, "Show content diffs for changed files")
	cmd.Flags().BoolVar(&flags.step, "step", false, "Confirm each task before running it")
	cmd.Flags().StringVar(&flags.startAtTask, "start-at-task", "", "Start the playbook at the named task")
	cmd.Flags().BoolVar(&flags.syntaxCheck, "syntax-check", false, "Validate the playbook and exit")
	cmd.Flags().BoolVar(&flags.listTasks, "list-tasks", false, "List the selected tasks and exit")
	cmd.Flags().BoolVar(&flags.listHosts, "list-hosts", false, "List the matched hosts and exit")
	cmd.Flags().BoolVar(&flags.noColor, "no-color", false, "Disable colored recap output")

	return cmd
}
