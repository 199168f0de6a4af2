package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// Global flags
	apiURL := "http://localhost:8080"
	if envURL := os.Getenv("API_URL"); envURL != "" {
		apiURL = envURL
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "seed":
		seedCmd(apiURL, args)
	case "push":
		pushCmd(apiURL, args)
	case "list":
		listCmd(apiURL)
	case "validate":
		validateCmd(apiURL, args)
	case "board":
		boardCmd(apiURL, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Tactician - command line client for the tactical plan API

USAGE:
  tactician <command> [options]

COMMANDS:
  seed      Store the built-in Gegenpress 4-3-3 demo plan
  push      Store a plan from a JSON or YAML file
  list      List stored plans
  validate  Run a check (formation, positions, zones, consistency, all)
  board     Print a stored plan's board
  help      Show this help message

ENVIRONMENT:
  API_URL   Backend API URL (default: http://localhost:8080)
  TOKEN     Access token; a throwaway coach is registered when unset

EXAMPLES:
  tactician seed --filename=gegenpress
  tactician push --file=plans/low_block.yaml
  tactician validate --ref=gegenpress --check=all
  tactician board --ref=gegenpress --format=svg > board.svg`)
}

func token(client *APIClient) string {
	if t := os.Getenv("TOKEN"); t != "" {
		return t
	}
	coach, t, err := client.RegisterCoach("Tactician")
	if err != nil {
		fail("register coach", err)
	}
	fmt.Fprintf(os.Stderr, "Registered coach %s\n", coach.DisplayName)
	return t
}

func fail(what string, err error) {
	fmt.Fprintf(os.Stderr, "FAILED to %s\n  Error: %v\n", what, err)
	os.Exit(1)
}

func seedCmd(apiURL string, args []string) {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	filename := fs.String("filename", "gegenpress", "Filename to store the demo plan under")
	fs.Parse(args)

	plan, err := demoPlan()
	if err != nil {
		fail("build demo plan", err)
	}

	client := NewAPIClient(apiURL)
	created, err := client.CreatePlan(token(client), plan, *filename)
	if err != nil {
		fail("store demo plan", err)
	}
	printCreated(created)
}

func pushCmd(apiURL string, args []string) {
	fs := flag.NewFlagSet("push", flag.ExitOnError)
	file := fs.String("file", "", "Plan document (.json, .yaml or .yml)")
	filename := fs.String("filename", "", "Store filename (default: the document's base name)")
	fs.Parse(args)

	if *file == "" {
		fmt.Println("Error: --file is required")
		os.Exit(1)
	}

	fields, err := loadPlanFile(*file)
	if err != nil {
		fail("read plan", err)
	}
	name := *filename
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(*file), filepath.Ext(*file))
	}

	client := NewAPIClient(apiURL)
	created, err := client.CreatePlan(token(client), fields, name)
	if err != nil {
		fail("store plan", err)
	}
	printCreated(created)
}

func listCmd(apiURL string) {
	plans, err := NewAPIClient(apiURL).ListPlans()
	if err != nil {
		fail("list plans", err)
	}
	if len(plans) == 0 {
		fmt.Println("No plans stored.")
		return
	}
	for _, p := range plans {
		fmt.Printf("%-40s %-20s %-8s %2d players  %s\n", p.ID, p.Name, p.Formation, p.Players, p.ModifiedAt)
	}
}

func validateCmd(apiURL string, args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	ref := fs.String("ref", "", "Plan reference: filename, identifier or plan_id=UUID('...')")
	file := fs.String("file", "", "Validate a local JSON or YAML document instead of a stored plan")
	check := fs.String("check", "all", "Check to run")
	fs.Parse(args)

	var target any = *ref
	if *file != "" {
		fields, err := loadPlanFile(*file)
		if err != nil {
			fail("read plan", err)
		}
		target = fields
	} else if *ref == "" {
		fmt.Println("Error: --ref or --file is required")
		os.Exit(1)
	}

	result, err := NewAPIClient(apiURL).Validate(*check, target)
	if err != nil {
		fail("validate", err)
	}

	if len(result.Reports) == 0 {
		printReport(*check, result.Report)
	} else {
		names := make([]string, 0, len(result.Reports))
		for name := range result.Reports {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			printReport(name, result.Reports[name])
		}
	}
	if !result.Valid {
		os.Exit(2)
	}
}

func boardCmd(apiURL string, args []string) {
	fs := flag.NewFlagSet("board", flag.ExitOnError)
	ref := fs.String("ref", "", "Stored plan reference")
	format := fs.String("format", "ascii", "ascii, svg or html")
	fs.Parse(args)

	if *ref == "" {
		fmt.Println("Error: --ref is required")
		os.Exit(1)
	}

	board, err := NewAPIClient(apiURL).Board(*ref, *format)
	if err != nil {
		fail("render board", err)
	}
	fmt.Println(board)
}

func printCreated(created *CreatedPlan) {
	fmt.Printf("Stored %q as %s (plan_id %s)\n", created.Plan.Name, created.Filename, created.Plan.PlanID)
	for _, w := range created.Warnings {
		fmt.Printf("  warning: %s\n", w)
	}
}

func printReport(check string, r Report) {
	status := "OK  "
	if !r.Valid {
		status = "FAIL"
	}
	fmt.Printf("[%s] %-12s %s\n", status, check, r.Message)
	for _, issue := range r.Issues {
		fmt.Printf("       - %s\n", issue)
	}
}
