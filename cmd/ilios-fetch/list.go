package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stopfstedt/local-iliosapiclient/pkg/client"
	"github.com/stopfstedt/local-iliosapiclient/pkg/query"
	"github.com/stopfstedt/local-iliosapiclient/pkg/response"
)

func newListCommand() *cobra.Command {
	var (
		configPath string
		baseURL    string
		tokenFlag  string
		batchSize  int
		filterArgs []string
		sortArgs   []string
	)

	cmd := &cobra.Command{
		Use:   "list <entity>",
		Short: "List all records of an entity type",
		Long: `List pages through every record of an entity type and prints the
result as a JSON array. Filters narrow the result set; a comma-separated
filter value selects multiple values for the same field.`,
		Example: `  ilios-fetch list courses
  ilios-fetch list courses --filter school=2 --filter year=2025,2026 --sort title=DESC`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(configPath)
			if err != nil {
				return err
			}
			applyFlags(cfg, baseURL, tokenFlag, batchSize)

			jwt, err := cfg.ResolveToken()
			if err != nil {
				return err
			}

			filters, err := parseFilters(filterArgs)
			if err != nil {
				return err
			}
			sort, err := parseSort(sortArgs)
			if err != nil {
				return err
			}

			c, err := client.New(client.Config{
				BaseURL:   cfg.BaseURL,
				BatchSize: cfg.BatchSize,
			})
			if err != nil {
				return err
			}

			records, err := c.List(cmd.Context(), jwt, args[0], client.ListOptions{
				Filters: filters,
				Sort:    sort,
			})
			if err != nil {
				return err
			}

			return printRecords(records)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to config file")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "API root URL")
	cmd.Flags().StringVar(&tokenFlag, "token", "", "JWT bearer token")
	cmd.Flags().IntVar(&batchSize, "batch-size", 0, "page size per request")
	cmd.Flags().StringArrayVar(&filterArgs, "filter", nil, "filter as key=value (repeatable; comma-separate values for a list)")
	cmd.Flags().StringArrayVar(&sortArgs, "sort", nil, "sort as key=ASC|DESC (repeatable)")

	return cmd
}

// applyFlags overrides file configuration with any flag values given.
func applyFlags(cfg *FileConfig, baseURL, token string, batchSize int) {
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if token != "" {
		cfg.Token = token
	}
	if batchSize > 0 {
		cfg.BatchSize = batchSize
	}
}

func parseFilters(args []string) (*query.Filters, error) {
	if len(args) == 0 {
		return nil, nil
	}
	filters := query.NewFilters()
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid filter %q, want key=value", arg)
		}
		if strings.Contains(value, ",") {
			filters.Set(key, query.List(strings.Split(value, ",")...))
			continue
		}
		filters.Set(key, query.Scalar(value))
	}
	return filters, nil
}

func parseSort(args []string) (*query.Sort, error) {
	if len(args) == 0 {
		return nil, nil
	}
	sort := query.NewSort()
	for _, arg := range args {
		key, direction, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid sort %q, want key=ASC|DESC", arg)
		}
		sort.Set(key, direction)
	}
	return sort, nil
}

func printRecords(records []response.Record) error {
	if records == nil {
		records = []response.Record{}
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}
