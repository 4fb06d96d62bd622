package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"hackadmin/internal/backend"
	"hackadmin/internal/domain"
	"hackadmin/internal/service"
	"hackadmin/pkg/errors"
)

var (
	exportDir string

	exportDepartment    string
	exportStatus        string
	exportCategory      string
	exportParticipation string
	exportQualified     string
	exportCompleted     string
	exportType          string
)

// exportCmd is the parent of the CSV download commands
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download CSV exports",
	Long: `Download the same CSV exports as the console.

Available subcommands:
  teams <segment>  - Team roster of a segment (college-inside, school, ...)
  users            - User roster, sorted by year
  assignments      - Judge assignment sheet of a participation category
  panel <id>       - One row per panel member and team`,
}

var exportTeamsCmd = &cobra.Command{
	Use:   "teams <segment>",
	Short: "Export the team roster of a segment",
	Args:  cobra.ExactArgs(1),
	RunE:  runExportTeams,
}

var exportUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "Export the user roster",
	RunE:  runExportUsers,
}

var exportAssignmentsCmd = &cobra.Command{
	Use:   "assignments",
	Short: "Export the judge assignment sheet",
	RunE:  runExportAssignments,
}

var exportPanelCmd = &cobra.Command{
	Use:   "panel <id>",
	Short: "Export one judge panel",
	Args:  cobra.ExactArgs(1),
	RunE:  runExportPanel,
}

func init() {
	exportCmd.PersistentFlags().StringVarP(&exportDir, "out", "o", ".", "Directory the CSV is written to")

	exportTeamsCmd.Flags().StringVar(&exportDepartment, "department", "", "Department filter (college segments)")
	exportTeamsCmd.Flags().StringVar(&exportStatus, "status", "", "Status filter")
	exportTeamsCmd.Flags().StringVar(&exportCategory, "category", "", "Innovation category id")
	exportTeamsCmd.Flags().StringVar(&exportQualified, "qualified", "", "Qualified status filter")
	exportTeamsCmd.Flags().StringVar(&exportCompleted, "completed", "", "Completed filter (true|false)")

	exportUsersCmd.Flags().StringVar(&exportDepartment, "department", "", "Department filter")
	exportUsersCmd.Flags().StringVar(&exportParticipation, "participation", "", "Participation category")
	exportUsersCmd.Flags().StringVar(&exportType, "type", "", "User type filter")

	exportAssignmentsCmd.Flags().StringVar(&exportParticipation, "participation", "", "Participation category")
	exportAssignmentsCmd.Flags().StringVar(&exportDepartment, "department", "", "Department (department schema)")
	exportAssignmentsCmd.Flags().StringVar(&exportCategory, "category", "", "Innovation category id (college)")
	exportAssignmentsCmd.Flags().StringVar(&exportStatus, "status", "", "assign or unassign (default unassign)")

	exportCmd.AddCommand(exportTeamsCmd)
	exportCmd.AddCommand(exportUsersCmd)
	exportCmd.AddCommand(exportAssignmentsCmd)
	exportCmd.AddCommand(exportPanelCmd)
}

// writeExport saves an export under --out and reports where it went
func writeExport(cmd *cobra.Command, exp *service.Export) error {
	if exp.Rows == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), service.EmptyResultMessage)
		return nil
	}
	path := filepath.Join(exportDir, exp.Filename)
	if err := os.WriteFile(path, []byte(exp.Body), 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d rows to %s\n", exp.Rows, path)
	return nil
}

func runExportTeams(cmd *cobra.Command, args []string) error {
	seg, ok := domain.ParseTeamSegment(args[0])
	if !ok {
		return errors.NewValidationError("Unknown team segment: "+args[0], nil)
	}
	svc, sess, err := loggedIn()
	if err != nil {
		return err
	}
	ctx, cancel := commandContext()
	defer cancel()

	exp, err := svc.Teams.Export(ctx, sess, seg, backend.TeamQuery{
		Department:      exportDepartment,
		Status:          exportStatus,
		CategoryID:      exportCategory,
		QualifiedStatus: exportQualified,
		IsCompleted:     exportCompleted,
	})
	if err != nil {
		return err
	}
	return writeExport(cmd, exp)
}

func runExportUsers(cmd *cobra.Command, args []string) error {
	svc, sess, err := loggedIn()
	if err != nil {
		return err
	}
	ctx, cancel := commandContext()
	defer cancel()

	exp, err := svc.Users.Export(ctx, sess, backend.UserQuery{
		Department:            exportDepartment,
		ParticipationCategory: exportParticipation,
		Type:                  exportType,
	})
	if err != nil {
		return err
	}
	return writeExport(cmd, exp)
}

func runExportAssignments(cmd *cobra.Command, args []string) error {
	svc, sess, err := loggedIn()
	if err != nil {
		return err
	}
	ctx, cancel := commandContext()
	defer cancel()

	exp, err := svc.Assignments.Export(ctx, sess, backend.AssignmentQuery{
		Department:            exportDepartment,
		ParticipationCategory: exportParticipation,
		CategoryID:            exportCategory,
		Status:                exportStatus,
	})
	if err != nil {
		return err
	}
	return writeExport(cmd, exp)
}

func runExportPanel(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return errors.NewValidationError("Invalid panel id", nil)
	}
	svc, sess, err := loggedIn()
	if err != nil {
		return err
	}
	ctx, cancel := commandContext()
	defer cancel()

	exp, err := svc.Panels.Export(ctx, sess, id)
	if err != nil {
		return err
	}
	return writeExport(cmd, exp)
}
