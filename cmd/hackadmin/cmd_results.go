package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"hackadmin/internal/domain"
	"hackadmin/internal/service"
)

var (
	resultsParticipation string
	resultsCategory      string

	judgeSearch string
	newJudge    domain.NewJudge
)

// resultsCmd prints evaluated teams grouped by innovation category
var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Show final evaluation results",
	Long: `Show evaluated teams grouped by innovation category.

College results need --category; other participation categories ignore it.`,
	RunE: runResults,
}

var judgesCmd = &cobra.Command{
	Use:   "judges",
	Short: "Manage judges",
}

var judgesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List judges",
	RunE:  runJudgesList,
}

var judgesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a judge account",
	RunE:  runJudgesCreate,
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show registration and completion overview",
	RunE:  runDashboard,
}

func init() {
	resultsCmd.Flags().StringVar(&resultsParticipation, "participation", "", "Participation category (required)")
	resultsCmd.Flags().StringVar(&resultsCategory, "category", "", "Innovation category id (college)")
	resultsCmd.MarkFlagRequired("participation")

	judgesListCmd.Flags().StringVarP(&judgeSearch, "search", "q", "", "Match name or email")

	judgesCreateCmd.Flags().StringVar(&newJudge.Name, "name", "", "Judge name")
	judgesCreateCmd.Flags().StringVar(&newJudge.Email, "email", "", "Judge email")
	judgesCreateCmd.Flags().StringVar(&newJudge.Password, "password", "", "Initial password")
	judgesCreateCmd.Flags().StringVar(&newJudge.Phonenumber, "phone", "", "Phone number")

	judgesCmd.AddCommand(judgesListCmd)
	judgesCmd.AddCommand(judgesCreateCmd)
}

func runResults(cmd *cobra.Command, args []string) error {
	q, err := service.ResultQueryFrom(resultsParticipation, resultsCategory)
	if err != nil {
		return err
	}
	svc, sess, err := loggedIn()
	if err != nil {
		return err
	}
	ctx, cancel := commandContext()
	defer cancel()

	groups, err := svc.Evaluations.Results(ctx, sess, q)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(groups) == 0 {
		fmt.Fprintln(out, service.EmptyResultMessage)
		return nil
	}
	for _, g := range groups {
		rows := make([][]string, 0, len(g.Teams))
		for _, t := range g.Teams {
			score := "-"
			if avg := service.AverageScore(t); avg != nil {
				score = strconv.FormatFloat(*avg, 'f', 2, 64)
			}
			qualified := ""
			if t.IsDepartmentQualified {
				qualified = "yes"
			}
			rows = append(rows, []string{strconv.Itoa(t.ID), t.TeamCode, t.TeamName, t.Department, score, qualified})
		}
		title := fmt.Sprintf("%s (%d qualified)", g.Category, g.QualifiedCount)
		renderTable(out, title, []string{"ID", "Code", "Team", "Dept", "Avg", "Qualified"}, rows, service.EmptyResultMessage)
	}
	return nil
}

func runJudgesList(cmd *cobra.Command, args []string) error {
	svc, sess, err := loggedIn()
	if err != nil {
		return err
	}
	ctx, cancel := commandContext()
	defer cancel()

	judges, err := svc.Judges.List(ctx, sess, judgeSearch)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(judges))
	for _, j := range judges {
		rows = append(rows, []string{strconv.Itoa(j.ID), j.Name, j.Email, j.Phonenumber})
	}
	renderTable(cmd.OutOrStdout(), "Judges", []string{"ID", "Name", "Email", "Phone"}, rows, service.EmptyResultMessage)
	return nil
}

func runJudgesCreate(cmd *cobra.Command, args []string) error {
	svc, sess, err := loggedIn()
	if err != nil {
		return err
	}
	ctx, cancel := commandContext()
	defer cancel()

	judge, msg, err := svc.Judges.Create(ctx, sess, newJudge)
	if err != nil {
		return err
	}
	if judge != nil && judge.ID > 0 {
		msg = fmt.Sprintf("%s (id %d)", msg, judge.ID)
	}
	fmt.Fprintln(cmd.OutOrStdout(), msg)
	return nil
}

func runDashboard(cmd *cobra.Command, args []string) error {
	svc, sess, err := loggedIn()
	if err != nil {
		return err
	}
	ctx, cancel := commandContext()
	defer cancel()

	d, err := svc.Dashboard.Get(ctx, sess)
	if err != nil {
		return err
	}
	registration := "closed"
	switch {
	case d.RegistrationUnknown:
		registration = "unknown"
	case d.RegistrationOpen:
		registration = "open"
	}
	rows := [][]string{
		{"Users", strconv.Itoa(d.Stats.TotalUsers)},
		{"Teams", strconv.Itoa(d.Stats.TotalTeams)},
		{"Completed", fmt.Sprintf("%d (%d%%)", d.Stats.TotalCompletedTeams, d.CompletedPercent)},
		{"Pending", fmt.Sprintf("%d (%d%%)", d.Stats.TotalPendingTeams, d.PendingPercent)},
		{"Registration", registration},
	}
	for _, seg := range []struct {
		label string
		n     *int
	}{
		{"College inside", d.Stats.TotalCollegeInsideTeams},
		{"School", d.Stats.TotalSchoolInsideTeams},
		{"Researcher", d.Stats.TotalResearcherTeams},
		{"Startup", d.Stats.TotalStartupTeams},
	} {
		if seg.n != nil {
			rows = append(rows, []string{seg.label, strconv.Itoa(*seg.n)})
		}
	}
	renderTable(cmd.OutOrStdout(), "Dashboard ("+d.AdminType+" admin)", []string{"Metric", "Value"}, rows, "")
	return nil
}
