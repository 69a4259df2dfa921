package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"compliance-bot/internal/analyst"
	"compliance-bot/internal/api"
	"compliance-bot/internal/catalog"
	"compliance-bot/internal/config"
	"compliance-bot/internal/dialogue"
	"compliance-bot/internal/intake"
	"compliance-bot/internal/interviewer"
	"compliance-bot/internal/report"
	"compliance-bot/internal/search"
	"compliance-bot/internal/session"
)

var (
	flagMode    string
	flagDate    string
	flagCatalog string
	flagOut     string
)

func main() {
	// .env is optional; deployed environments set variables directly.
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:           "compliance-bot",
		Short:         "Automated compliance reporting under the Companies Act, 2013",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Collect intake answers and generate the compliance report",
		RunE:  runIntake,
	}
	runCmd.Flags().StringVar(&flagMode, "mode", "form", "intake mode: form or chat")
	runCmd.Flags().StringVar(&flagDate, "date", "", "reference date for deadlines (DD-MM-YYYY, default today)")
	runCmd.Flags().StringVar(&flagCatalog, "catalog", "", "path to a question catalog YAML file")

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export the generated report byte-for-byte",
		RunE:  runExport,
	}
	exportCmd.Flags().StringVarP(&flagOut, "out", "o", "", "output file (default: date-stamped name in the output directory)")

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Discard the current cycle and start fresh",
		RunE:  runReset,
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current intake and report state",
		RunE:  runStatus,
	}

	root.AddCommand(runCmd, exportCmd, resetCmd, statusCmd)

	if err := root.Execute(); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

func runIntake(cmd *cobra.Command, args []string) error {
	mode := session.Mode(flagMode)
	if mode != session.ModeForm && mode != session.ModeChat {
		return fmt.Errorf("unknown mode %q: expected form or chat", flagMode)
	}

	cfg := config.Load()
	if flagCatalog != "" {
		cfg.CatalogPath = flagCatalog
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	referenceDate := time.Now()
	if flagDate != "" {
		parsed, err := time.Parse("02-01-2006", flagDate)
		if err != nil {
			return fmt.Errorf("invalid reference date %q: expected DD-MM-YYYY", flagDate)
		}
		referenceDate = parsed
	}

	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	client := api.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.MaxTokens, cfg.OpenAI.Temperature)
	capability := analyst.NewOpenAICapability(client, search.NewClient(cfg.SerperAPIKey))
	manager := session.NewManager(cat, interviewer.New(client), capability, cfg.OutputDir)

	sess := manager.Create(mode)
	scanner := bufio.NewScanner(os.Stdin)

	color.Cyan("Compliance Bot — Companies Act, 2013")
	fmt.Printf("Intake ID: %s\n\n", sess.ID)

	switch mode {
	case session.ModeForm:
		err = runFormIntake(sess, scanner)
	case session.ModeChat:
		err = runChatIntake(sess, manager, scanner)
	}
	if err != nil {
		saveState(cfg.OutputDir, sess)
		return err
	}

	if !sess.Ready() {
		saveState(cfg.OutputDir, sess)
		color.Yellow("Intake incomplete (%d/%d answered); no report generated.", sess.Store.Answered(), cat.Len())
		return nil
	}
	manager.Metrics().IncrementIntakesCompleted()

	color.Yellow("\nGenerating your compliance report... This may take a few minutes...")
	if err := sess.GenerateReport(referenceDate); err != nil {
		manager.Metrics().IncrementReportsFailed()
		saveState(cfg.OutputDir, sess)
		var analysisErr *analyst.AnalysisError
		if errors.As(err, &analysisErr) {
			return fmt.Errorf("%w (run again to retry the analysis)", err)
		}
		return err
	}
	manager.Metrics().IncrementReportsGenerated()

	_, content := sess.Report.Get()
	fmt.Println("\n## Your Compliance Report")
	fmt.Println(content)
	color.Green("\nReport saved to %s", sess.Report.ArtifactPath())
	fmt.Println("Use `compliance-bot export` to download it as markdown.")

	saveState(cfg.OutputDir, sess)
	return nil
}

// runFormIntake presents every catalog question in order, re-prompting on
// invalid input until the store is complete.
func runFormIntake(sess *session.Session, scanner *bufio.Scanner) error {
	for _, q := range sess.Catalog.Questions() {
		for {
			fmt.Printf("%d. %s\n> ", q.ID, q.Prompt)
			if !scanner.Scan() {
				return scanner.Err()
			}
			answer := strings.TrimSpace(scanner.Text())
			if answer == "" {
				color.Yellow("An answer is required.")
				continue
			}
			if err := sess.Store.SetAnswer(q.ID, answer); err != nil {
				var vErr *intake.ValidationError
				if errors.As(err, &vErr) {
					color.Yellow("%s", vErr.Reason)
					continue
				}
				return err
			}
			break
		}
	}
	return nil
}

// runChatIntake runs the conversational intake until the dialogue
// finishes. Validation failures re-prompt the same question; a stalled
// sequencer offers a retry of the same turn.
func runChatIntake(sess *session.Session, manager *session.Manager, scanner *bufio.Scanner) error {
	prompt, err := startWithRetry(sess, scanner)
	if err != nil {
		return err
	}

	for sess.Driver.State() == dialogue.StateAwaitingAnswer {
		manager.Metrics().IncrementQuestionsAsked()
		color.Cyan("%s", prompt)
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		answer := scanner.Text()

		next, err := sess.Driver.Submit(answer)
		if err != nil {
			var vErr *intake.ValidationError
			var stalled *dialogue.StalledError
			switch {
			case errors.As(err, &vErr):
				color.Yellow("%s", vErr.Reason)
				prompt = sess.Driver.CurrentPrompt()
				continue
			case errors.As(err, &stalled):
				color.Yellow("The interviewer is not responding (%v). Press Enter to retry.", stalled.Cause)
				scanner.Scan()
				next, err = sess.Driver.Submit(answer)
				if err != nil {
					return err
				}
			default:
				return err
			}
		}
		prompt = next
	}

	color.Green("Thank you, the intake is complete.")
	return nil
}

func startWithRetry(sess *session.Session, scanner *bufio.Scanner) (string, error) {
	for {
		prompt, err := sess.Driver.Start()
		if err == nil {
			return prompt, nil
		}
		var stalled *dialogue.StalledError
		if !errors.As(err, &stalled) {
			return "", err
		}
		color.Yellow("The interviewer is not responding (%v). Press Enter to retry, Ctrl-C to abort.", stalled.Cause)
		if !scanner.Scan() {
			return "", stalled
		}
	}
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	st, err := session.LoadState(cfg.OutputDir)
	if err != nil {
		return fmt.Errorf("no report to export: %w", err)
	}
	if st.ReportStatus != report.StatusReady {
		return report.ErrNotReady
	}

	mgr := report.NewManager(cfg.OutputDir)
	if err := mgr.Restore(st.IntakeID); err != nil {
		return err
	}

	path, err := mgr.Export(flagOut)
	if err != nil {
		return err
	}
	color.Green("Report exported to %s (text/markdown)", path)
	return nil
}

func runReset(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	st, err := session.LoadState(cfg.OutputDir)
	if err == nil && st.IntakeID != "" {
		mgr := report.NewManager(cfg.OutputDir)
		// Restore failing just means there is no artifact to discard.
		_ = mgr.Restore(st.IntakeID)
		if err := mgr.Reset(); err != nil {
			return err
		}
	}

	if err := session.ClearState(cfg.OutputDir); err != nil {
		return err
	}
	color.Green("Cycle reset. Run `compliance-bot run` to start a new intake.")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	st, err := session.LoadState(cfg.OutputDir)
	if err != nil {
		fmt.Println("No intake cycle in progress.")
		return nil
	}

	fmt.Printf("Intake ID:     %s\n", st.IntakeID)
	fmt.Printf("Mode:          %s\n", st.Mode)
	fmt.Printf("Started:       %s\n", st.Timestamp)
	fmt.Printf("Answered:      %d/%d\n", st.Answered, st.Total)
	fmt.Printf("Report status: %s\n", st.ReportStatus)
	if st.ReportFile != "" {
		fmt.Printf("Report file:   %s\n", st.ReportFile)
	}
	return nil
}

func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if _, err := os.Stat(cfg.CatalogPath); err == nil {
		return catalog.Load(cfg.CatalogPath)
	}
	return catalog.Default(), nil
}

func saveState(dir string, sess *session.Session) {
	status, _ := sess.Report.Get()
	st := &session.PersistedState{
		IntakeID:     sess.ID,
		Mode:         sess.Mode,
		Timestamp:    sess.CreatedAt.Format(time.RFC3339),
		Answered:     sess.Store.Answered(),
		Total:        sess.Catalog.Len(),
		ReportStatus: status,
	}
	if status == report.StatusReady {
		st.ReportFile = sess.Report.ArtifactPath()
	}
	if err := session.SaveState(dir, st); err != nil {
		color.Yellow("Warning: could not save session state: %v", err)
	}
}
