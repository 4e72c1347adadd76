package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ctfarena/ctfarena/internal/model"
	"github.com/ctfarena/ctfarena/internal/session"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case *model.User:
		o.printUser(v)
	case []model.User:
		o.printUsers(v)
	case *model.Challenge:
		o.printChallenge(v)
	case []model.Challenge:
		o.printChallenges(v)
	case *model.SubmissionResult:
		o.printSubmissionResult(v)
	case *model.Leaderboard:
		o.printLeaderboard(v)
	case *model.Progress:
		o.printProgress(v)
	case []model.Ad:
		o.printAds(v)
	case *model.TokenVerification:
		o.printTokenVerification(v)
	case *model.HealthStatus:
		o.printHealthStatus(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printUser(u *model.User) {
	fmt.Printf("User: %s (%s)\n", u.Username, u.ID)
	fmt.Printf("Email: %s\n", u.Email)
	fmt.Printf("Role: %s\n", u.Role)
	fmt.Printf("Score: %d\n", u.Score)
	fmt.Printf("Solved: %d\n", len(u.SolvedChallenges))
	if u.LastLogin != nil {
		fmt.Printf("Last Login: %s\n", u.LastLogin.Format("2006-01-02 15:04:05"))
	}
}

func (o *Output) printUsers(users []model.User) {
	fmt.Printf("Users (%d):\n", len(users))
	for _, u := range users {
		fmt.Printf("  - %s <%s> [%s] %d pts\n", u.Username, u.Email, u.Role, u.Score)
	}
}

func (o *Output) printChallenge(c *model.Challenge) {
	state := "active"
	if !c.IsActive {
		state = "inactive"
	}
	fmt.Printf("Challenge: %s (%s)\n", c.Title, c.ID)
	fmt.Printf("Category: %s | Difficulty: %s | Points: %d | %s\n", c.Category, c.Difficulty, c.Points, state)
	fmt.Printf("Solves: %d\n", c.SolveCount)
	if c.IsSolved {
		fmt.Println("Solved: yes")
	}
	if c.Description != "" {
		fmt.Printf("\n%s\n", c.Description)
	}
	if c.PlayInstructions != "" {
		fmt.Printf("\n%s\n", c.PlayInstructions)
	}
	if flag := c.Flag(); flag != "" {
		fmt.Printf("\nFlag: %s\n", flag)
	}
}

func (o *Output) printChallenges(challenges []model.Challenge) {
	fmt.Printf("Challenges (%d):\n", len(challenges))
	for _, c := range challenges {
		solved := ""
		if c.IsSolved {
			solved = " [solved]"
		}
		fmt.Printf("  - %-30s %-12s %-8s %4d pts%s\n", c.Title, c.Category, c.Difficulty, c.Points, solved)
	}
}

func (o *Output) printSubmissionResult(r *model.SubmissionResult) {
	if r.Success {
		fmt.Printf("Correct! %s\n", r.Message)
		if r.PointsEarned > 0 {
			fmt.Printf("Points earned: %d\n", r.PointsEarned)
		}
	} else {
		fmt.Printf("Incorrect: %s\n", r.Message)
	}
}

func (o *Output) printLeaderboard(l *model.Leaderboard) {
	fmt.Printf("Leaderboard (%d players):\n", l.TotalUsers)
	for _, e := range l.Leaderboard {
		marker := ""
		if e.IsCurrentUser {
			marker = " <- you"
		}
		fmt.Printf("  %3d. %-20s %5d pts  %d solved (%.0f%%)%s\n",
			e.Rank, e.Username, e.Score, e.SolvedChallenges, e.ProgressPercentage, marker)
	}
	if l.CurrentUserRank != nil {
		fmt.Printf("Your rank: %d\n", *l.CurrentUserRank)
	}
}

func (o *Output) printProgress(p *model.Progress) {
	fmt.Printf("Solved: %d / %d challenges\n", p.SolvedChallenges, p.TotalChallenges)
	fmt.Printf("Score: %d\n", p.TotalScore)
	fmt.Printf("Progress: %.1f%%\n", p.ProgressPercentage)
}

func (o *Output) printAds(ads []model.Ad) {
	fmt.Printf("Ads (%d):\n", len(ads))
	for _, a := range ads {
		state := "active"
		if !a.IsActive {
			state = "inactive"
		}
		fmt.Printf("  - %s [%s, %s]", a.AdID, a.Position, state)
		if a.Clicks > 0 {
			fmt.Printf(" %d clicks", a.Clicks)
		}
		fmt.Println()
		if text := flattenHTML(a.Content); text != "" {
			fmt.Printf("    %s\n", text)
		}
	}
}

func (o *Output) printTokenVerification(t *model.TokenVerification) {
	validStr := "no"
	if t.Valid {
		validStr = "yes"
	}
	fmt.Printf("Valid: %s\n", validStr)
	fmt.Printf("User: %s\n", t.UserID)
	fmt.Printf("Role: %s\n", t.Role)
}

func (o *Output) printHealthStatus(h *model.HealthStatus) {
	fmt.Printf("Status: %s\n", h.Status)
	fmt.Printf("Database: %s\n", h.Database)
}

func (o *Output) printSession(user *model.User, token string) {
	o.printUser(user)
	if token != "" {
		fmt.Printf("Token: %s\n", token)
	}
}

// printSessionData is the JSON shape for login/register results
type sessionData struct {
	User  *model.User `json:"user"`
	Token string      `json:"token,omitempty"`
}

// PrintSession outputs the result of a login or registration. A missing
// token means registration succeeded but the follow-up login did not; the
// account still exists.
func (o *Output) PrintSession(m *session.Manager) {
	user := m.User()
	token := m.Token()
	if o.format == "json" {
		o.printJSON(sessionData{User: user, Token: token})
		return
	}
	o.printSession(user, token)
	if token == "" {
		fmt.Println("Note: account created but no session token was issued; log in manually.")
	}
}

// flattenHTML reduces an ad's HTML content to its visible text, collapsing
// whitespace. Returns the input unchanged if it does not parse as HTML.
func flattenHTML(content string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return strings.TrimSpace(content)
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
