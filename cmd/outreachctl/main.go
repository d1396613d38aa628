package main

import (
	"fmt"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
)

// outreachctl drives the running server's batch endpoints from cron or
// an operator shell and prints the structured summaries they return.

var (
	baseURL string
	client  *resty.Client
)

func main() {
	root := &cobra.Command{
		Use:   "outreachctl",
		Short: "Operator CLI for the intern outreach engine",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if baseURL == "" {
				baseURL = os.Getenv("OUTREACH_API_URL")
			}
			if baseURL == "" {
				baseURL = "http://localhost:8080"
			}
			client = resty.New().
				SetBaseURL(baseURL).
				SetTimeout(10 * time.Minute)
		},
	}
	root.PersistentFlags().StringVar(&baseURL, "base-url", "", "server base URL (default $OUTREACH_API_URL or http://localhost:8080)")

	root.AddCommand(matchCmd(), outreachCmd(), followUpsCmd(), statusCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func matchCmd() *cobra.Command {
	var candidateID string
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Recompute matches for one candidate or all of them",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/matches/recompute"
			if candidateID != "" {
				path += "/" + candidateID
			}
			return post(path, nil)
		},
	}
	cmd.Flags().StringVar(&candidateID, "candidate", "", "candidate id (empty recomputes everyone)")
	return cmd
}

func outreachCmd() *cobra.Command {
	var urgent, dryRun bool
	var maxRoles int
	cmd := &cobra.Command{
		Use:   "outreach",
		Short: "Run an outreach batch",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/outreach/run"
			if urgent {
				path = "/api/outreach/run-urgent"
			}
			params := map[string]string{}
			if maxRoles > 0 {
				params["max_roles"] = fmt.Sprint(maxRoles)
			}
			if dryRun && !urgent {
				params["dry_run"] = "true"
			}
			return post(path, params)
		},
	}
	cmd.Flags().BoolVar(&urgent, "urgent", false, "run the urgent batch instead of the normal one")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "log what would be sent without sending")
	cmd.Flags().IntVar(&maxRoles, "max-roles", 0, "cap the number of roles processed")
	return cmd
}

func followUpsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "followups",
		Short: "Process all due follow-up tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return post("/api/followups/process", nil)
		},
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check server liveness",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.R().Get("/livez")
			if err != nil {
				return fmt.Errorf("status check failed: %w", err)
			}
			fmt.Printf("%s: %d\n", baseURL, resp.StatusCode())
			return nil
		},
	}
}

func post(path string, params map[string]string) error {
	req := client.R()
	if len(params) > 0 {
		req.SetQueryParams(params)
	}
	resp, err := req.Post(path)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	body := resp.String()
	if resp.StatusCode() >= 400 {
		return fmt.Errorf("%s returned %d: %s", path, resp.StatusCode(), body)
	}

	fmt.Println(gjson.Get(body, "message").String())
	if data := gjson.Get(body, "data"); data.Exists() {
		fmt.Println(data.String())
	}
	return nil
}
