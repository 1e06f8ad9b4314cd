package cmd

import (
	"github.com/gnames/tfingest/pkg/config"
	"github.com/gnames/tfingest/pkg/layout"
	"github.com/spf13/cobra"
)

type flagFunc func(cmd *cobra.Command) []config.Option

// addIngestFlags adds flags shared by validate and ingest commands.
func addIngestFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("round", "r", 0,
		"reporting round of the workbooks (3, 4, 5 or 6)")
	cmd.Flags().StringSliceP("place", "p", nil,
		"place the submitter is authorised for (repeatable)")
	cmd.Flags().StringSliceP("fund-type", "f", nil,
		"fund type the submitter is authorised for, Town_Deal or Future_High_Street_Fund (repeatable)")
	cmd.Flags().StringP("format", "F", "json",
		"output format: json or text")
	cmd.Flags().BoolP("tables", "t", false,
		"include tables of valid submissions in JSON output")
	cmd.Flags().StringP("refdata", "R", "",
		"reference data YAML file (default built-in data)")
	cmd.Flags().IntP("jobs", "j", 0,
		"number of workbooks processed at once")
}

func roundFlag(cmd *cobra.Command) []config.Option {
	i, _ := cmd.Flags().GetInt("round")
	return []config.Option{config.OptIngestRound(i)}
}

func authFlags(cmd *cobra.Command) []config.Option {
	places, _ := cmd.Flags().GetStringSlice("place")
	funds, _ := cmd.Flags().GetStringSlice("fund-type")
	return []config.Option{
		config.OptIngestAuthPlaces(places),
		config.OptIngestAuthFundTypes(funds),
	}
}

func formatFlag(cmd *cobra.Command) []config.Option {
	s, _ := cmd.Flags().GetString("format")
	return []config.Option{config.OptIngestOutputFormat(s)}
}

func refdataFlag(cmd *cobra.Command) []config.Option {
	if !cmd.Flags().Changed("refdata") {
		return nil
	}
	s, _ := cmd.Flags().GetString("refdata")
	return []config.Option{config.OptIngestReferenceFile(s)}
}

func jobsFlag(cmd *cobra.Command) []config.Option {
	if !cmd.Flags().Changed("jobs") {
		return nil
	}
	i, _ := cmd.Flags().GetInt("jobs")
	return []config.Option{config.OptJobsNumber(i)}
}

func sqliteFlag(cmd *cobra.Command) []config.Option {
	s, _ := cmd.Flags().GetString("sqlite")
	if s == "" {
		return nil
	}
	return []config.Option{config.OptIngestSQLitePath(s)}
}

func dbFlag(cmd *cobra.Command) []config.Option {
	b, _ := cmd.Flags().GetBool("db")
	return []config.Option{config.OptIngestToDatabase(b)}
}

// flagOptions collects options of the given flags.
func flagOptions(cmd *cobra.Command, flags ...flagFunc) []config.Option {
	var res []config.Option
	for _, f := range flags {
		res = append(res, f(cmd)...)
	}
	return res
}

// applyIngestFlags updates cfg from flags and checks the round.
func applyIngestFlags(cmd *cobra.Command, c *config.Config, flags ...flagFunc) error {
	c.Update(flagOptions(cmd, flags...))
	if c.Ingest.Round == 0 {
		round, _ := cmd.Flags().GetInt("round")
		return layout.UnknownRoundError(round)
	}
	return nil
}
