package main

import (
	"fmt"
	"os"
)

var sampleTrophies = [][2]string{
	{"Bob", "Shipped v1 a week early"},
	{"Carol", "Fixed the bug nobody else could reproduce"},
	{"Priya", "Onboarded three new teammates"},
	{"Sam", "Kept the demo alive through a network outage"},
	{"Ana", "Wrote the docs everyone actually reads"},
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	apiURL := "http://localhost:8080"
	if envURL := os.Getenv("API_URL"); envURL != "" {
		apiURL = envURL
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "demo":
		demoCmd(apiURL)
	case "submit":
		submitCmd(apiURL, args)
	case "walk":
		walkCmd(apiURL, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

// demoCmd creates a session, fills it with sample trophies, and prints the
// share URL so the frontend can be pointed at it.
func demoCmd(apiURL string) {
	client := NewAPIClient(apiURL)

	session, err := client.CreateSession("Demo Organizer")
	if err != nil {
		fatal(err)
	}
	fmt.Printf("Created session %s (%s)\n", session.SessionCode, session.ShareableURL)

	for _, sample := range sampleTrophies {
		trophy, err := client.SubmitTrophy(session.SessionCode, sample[0], sample[1], "Seeder")
		if err != nil {
			fatal(err)
		}
		fmt.Printf("  #%d %s — %s\n", trophy.DisplayOrder, trophy.RecipientName, trophy.AchievementText)
	}

	fmt.Printf("\nShare URL: %s\n", session.ShareableURL)
}

// submitCmd adds one trophy to an existing session.
func submitCmd(apiURL string, args []string) {
	if len(args) < 3 {
		fmt.Println("usage: seeder submit <code> <recipient> <achievement> [submitter]")
		os.Exit(1)
	}

	submitter := ""
	if len(args) > 3 {
		submitter = args[3]
	}

	client := NewAPIClient(apiURL)
	trophy, err := client.SubmitTrophy(args[0], args[1], args[2], submitter)
	if err != nil {
		fatal(err)
	}

	fmt.Printf("Submitted trophy #%d for %s\n", trophy.DisplayOrder, trophy.RecipientName)
}

// walkCmd starts the presentation and steps through every trophy using the
// next-trophy links, the same way the presentation page does.
func walkCmd(apiURL string, args []string) {
	if len(args) < 1 {
		fmt.Println("usage: seeder walk <code>")
		os.Exit(1)
	}
	code := args[0]

	client := NewAPIClient(apiURL)

	session, err := client.StartPresentation(code)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("Presenting session %s (%d trophies)\n\n", session.SessionCode, session.TrophyCount)

	trophies, err := client.ListTrophies(code)
	if err != nil {
		fatal(err)
	}
	if len(trophies) == 0 {
		fmt.Println("nothing to present")
		return
	}

	trophyID := trophies[0].ID
	for {
		details, err := client.GetTrophyDetails(code, trophyID)
		if err != nil {
			fatal(err)
		}

		fmt.Printf("  #%d %s — %s\n", details.DisplayOrder, details.RecipientName, details.AchievementText)

		if details.IsLastTrophy {
			break
		}
		trophyID = *details.NextTrophyID
	}

	fmt.Println("\nDone.")
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}

func printUsage() {
	fmt.Println(`Trophy Seeder - Development tool for trophy-sharing sessions

USAGE:
  seeder <command> [options]

COMMANDS:
  demo      Create a session and fill it with sample trophies
  submit    Add a trophy to an existing session
  walk      Start the presentation and step through every trophy
  help      Show this help message

ENVIRONMENT:
  API_URL   Backend API URL (default: http://localhost:8080)

EXAMPLES:
  # Create a ready-to-present demo session
  seeder demo

  # Add one more trophy
  seeder submit AB12CD34 "Bob" "Shipped v1"

  # Present it in order
  seeder walk AB12CD34`)
}
