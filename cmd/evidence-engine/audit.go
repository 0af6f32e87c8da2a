// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "List and verify the audit trail",
	Long: `Audit inspects the tamper-evident record trail. Use list to enumerate
records and verify to recompute signatures. Records carry only hashes of
the original note and caller; no PHI is ever stored.`,
}

var auditListCmd = &cobra.Command{
	Use:   "list",
	Short: "List audit records, oldest first",
	RunE:  runAuditList,
}

func runAuditList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	records, err := store.List(context.Background())
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Println("No audit records found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-36s  %-30s  %-10s  %-7s  %s\n", "Request ID", "Timestamp", "Latency", "Alert", "Model")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))
	for _, record := range records {
		alert := "-"
		if record.HallucinationAlert {
			alert = "ALERT"
		}
		fmt.Fprintf(os.Stdout, "%-36s  %-30s  %7dms  %-7s  %s\n",
			record.RequestID, record.Timestamp, record.LatencyMs, alert, record.ModelVersion)
	}
	fmt.Fprintf(os.Stdout, "\n%d records\n", len(records))
	return nil
}

var auditVerifyCmd = &cobra.Command{
	Use:   "verify [request-id]",
	Short: "Recompute and check record signatures",
	Long: `Verify recomputes the HMAC signature of one record (by request id) or
of every record in the store, and reports any mismatch. A mismatch means
the record was altered after signing or was signed with a different key.`,
	RunE: runAuditVerify,
}

func runAuditVerify(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	recorder := newRecorder(cfg, store, logger)

	if len(args) > 0 {
		record, err := store.Get(context.Background(), args[0])
		if err != nil {
			return err
		}
		if !recorder.Verify(record) {
			return fmt.Errorf("record %s failed verification", record.RequestID)
		}
		fmt.Printf("Record %s verified.\n", record.RequestID)
		return nil
	}

	records, err := store.List(context.Background())
	if err != nil {
		return err
	}

	failed := 0
	for _, record := range records {
		if recorder.Verify(record) {
			fmt.Printf("ok    %s\n", record.RequestID)
		} else {
			fmt.Printf("FAIL  %s\n", record.RequestID)
			failed++
		}
	}
	fmt.Printf("\n%d records, %d failed\n", len(records), failed)
	if failed > 0 {
		return fmt.Errorf("%d record(s) failed verification", failed)
	}
	return nil
}

func init() {
	auditListCmd.Flags().Bool("json", false, "output records as JSON")

	auditCmd.AddCommand(auditListCmd)
	auditCmd.AddCommand(auditVerifyCmd)

	rootCmd.AddCommand(auditCmd)
}
