package client

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newVaultCommand(session func() *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vault",
		Short: "Manage the encrypted local vault",
	}
	cmd.AddCommand(
		newVaultPutCommand(session),
		newVaultGetCommand(session),
		newVaultInfoCommand(session),
		newVaultRemoveCommand(session),
	)
	return cmd
}

func newVaultPutCommand(session func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "put <file>",
		Short: "Encrypt a file into the vault without touching the ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := session()
			subjectID, err := app.subject()
			if err != nil {
				return err
			}
			payload, name, err := readPayload(args[0])
			if err != nil {
				return err
			}

			entry, err := app.services.VaultService.Store(cmd.Context(), subjectID, payload, name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "data hash: %s\n", entry.DataHash.Hex())
			return nil
		},
	}
}

func newVaultGetCommand(session func() *App) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Decrypt the vault payload to stdout or a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := session()
			subjectID, err := app.subject()
			if err != nil {
				return err
			}

			payload, err := app.services.VaultService.Retrieve(cmd.Context(), subjectID)
			if err != nil {
				return err
			}
			if outPath == "" {
				_, err = cmd.OutOrStdout().Write(payload)
				return err
			}
			return os.WriteFile(outPath, payload, 0o600)
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write plaintext to this file")
	return cmd
}

func newVaultInfoCommand(session func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show vault metadata",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := session()
			subjectID, err := app.subject()
			if err != nil {
				return err
			}

			entry, err := app.services.VaultService.Entry(cmd.Context(), subjectID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "file:      %s\n", entry.FileName)
			fmt.Fprintf(out, "size:      %d\n", entry.SizeBytes)
			fmt.Fprintf(out, "data hash: %s\n", entry.DataHash.Hex())
			fmt.Fprintf(out, "policy:    %s\n", entry.KeyPolicy)
			fmt.Fprintf(out, "uploaded:  %s\n", entry.UploadedAt.Format("2006-01-02 15:04:05"))
			return nil
		},
	}
}

func newVaultRemoveCommand(session func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm",
		Short: "Delete the vault entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := session()
			subjectID, err := app.subject()
			if err != nil {
				return err
			}
			return app.services.VaultService.Delete(cmd.Context(), subjectID)
		},
	}
}

func newExportCommand(session func() *App) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Upload a password-encrypted copy of the vault payload",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := session()
			subjectID, err := app.subject()
			if err != nil {
				return err
			}

			ref, err := app.services.ExportService.Export(cmd.Context(), subjectID, password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ref)
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "export password")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newImportCommand(session func() *App) *cobra.Command {
	var password, fileName string

	cmd := &cobra.Command{
		Use:   "import <ref>",
		Short: "Download an export and store it in the vault",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := session()
			subjectID, err := app.subject()
			if err != nil {
				return err
			}

			entry, err := app.services.ExportService.Import(cmd.Context(), subjectID, args[0], password, fileName)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "data hash: %s\n", entry.DataHash.Hex())
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "export password")
	cmd.Flags().StringVar(&fileName, "name", "", "file name recorded with the entry")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newAuditCommand(session func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "audit",
		Short: "Download the ledger event log and verify its hash chain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, head, err := session().auditChain(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "events: %d\nhead:   %s\nchain ok\n", n, head.Hex())
			return nil
		},
	}
}
