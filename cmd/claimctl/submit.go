package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"medclaim/internal/client"
	"medclaim/internal/ui"
)

var errSubmissionFailed = errors.New(ui.GenericErrorMessage)

var submitCmd = &cobra.Command{
	Use:   "submit FILE...",
	Short: "Submit documents as one claim",
	Long: `Submit one or more documents (hospital bill, discharge summary, ID card, ...) as a
single claim and print the decision.

Examples:
  # Submit to the endpoint configured by MEDCLAIM_UI_BACKEND_URL
  claimctl submit bill.pdf discharge.pdf id_card.png

  # Submit to another server and print the raw JSON result
  claimctl submit --endpoint http://claims.internal:8080/process-claim --json *.pdf`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSubmit,
}

func init() {
	f := submitCmd.Flags()
	f.String("endpoint", "", "claim processing endpoint (default: MEDCLAIM_UI_BACKEND_URL + /process-claim)")
	f.Duration("timeout", 0, "request timeout; 0 waits until the server answers")
	f.Bool("json", false, "print the raw processing result as JSON")

	rootCmd.AddCommand(submitCmd)
}

func runSubmit(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	endpoint, _ := cmd.Flags().GetString("endpoint")
	if endpoint == "" {
		endpoint = cfg.UI.ProcessingURL()
	}
	timeout, _ := cmd.Flags().GetDuration("timeout")
	asJSON, _ := cmd.Flags().GetBool("json")

	files, err := readFiles(args)
	if err != nil {
		return err
	}

	log := zap.L().With(zap.String("command", "submit"), zap.String("endpoint", endpoint))

	ws := ui.NewWorkspace(client.New(endpoint, &http.Client{Timeout: timeout}))
	ws.Select(files)
	if err := ws.Submit(ctx); err != nil {
		log.Error("claim submission failed", zap.Error(err))
	}

	state := ws.State()
	if state.Error != "" {
		return errSubmissionFailed
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(state.Result)
	}
	return ui.WriteText(out, ui.Render(state.Result, state.FileNames()...))
}

func readFiles(paths []string) ([]ui.SelectedFile, error) {
	files := make([]ui.SelectedFile, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		files = append(files, ui.SelectedFile{
			Name:        filepath.Base(p),
			ContentType: mimetype.Detect(data).String(),
			Data:        data,
		})
	}
	return files, nil
}
