// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-gene-consent/models"
)

func newAddressCommand(session func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "address",
		Short: "Print the ledger address of the current identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := session()
			subjectID, err := app.subject()
			if err != nil {
				return err
			}
			addr, err := app.services.ConsentService.Address(subjectID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), addr.Hex())
			return nil
		},
	}
}

// newRegisterCommand stores the genome file in the vault and binds its hash
// to the identity on the ledger.
func newRegisterCommand(session func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "register <genome-file>",
		Short: "Encrypt a genome file into the vault and register it on the ledger",
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
			res, err := app.services.ConsentService.RegisterIdentity(cmd.Context(), subjectID, entry.DataHash)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "address:   %s\n", res.Address.Hex())
			fmt.Fprintf(out, "data hash: %s\n", entry.DataHash.Hex())
			fmt.Fprintf(out, "tx:        %s\n", res.TxRef)
			return nil
		},
	}
}

func newUpdateCommand(session func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "update <genome-file>",
		Short: "Replace the vault payload and update the registered data hash",
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
			txRef, err := app.services.ConsentService.UpdateRegistration(cmd.Context(), subjectID, entry.DataHash)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "data hash: %s\ntx:        %s\n", entry.DataHash.Hex(), txRef)
			return nil
		},
	}
}

func newRequestCommand(session func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "request <target-address>",
		Short: "Ask the owner of target-address for consent to an analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := session()
			subjectID, err := app.subject()
			if err != nil {
				return err
			}
			target, err := models.ParseAddress(args[0])
			if err != nil {
				return fmt.Errorf("%w: %s", err, args[0])
			}

			res, err := app.services.ConsentService.RequestAnalysis(cmd.Context(), subjectID, target)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "request: %d\ntx:      %s\n", res.RequestID, res.TxRef)
			return nil
		},
	}
}

func newGrantCommand(session func() *App) *cobra.Command {
	var (
		method       string
		material     string
		materialFile string
	)

	cmd := &cobra.Command{
		Use:   "grant <request-id>",
		Short: "Consent to a pending request",
		Long: `Consent to a pending request targeting the current identity.

With --method direct the material is the encrypted key handed to the
requester. With --method indirect it is a retrieval reference.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := session()
			subjectID, err := app.subject()
			if err != nil {
				return err
			}
			requestID, err := parseRequestID(args[0])
			if err != nil {
				return err
			}

			var payload []byte
			switch {
			case material != "" && materialFile == "":
				payload = []byte(material)
			case material == "" && materialFile != "":
				if payload, _, err = readPayload(materialFile); err != nil {
					return err
				}
			default:
				return errInvalidMaterial
			}

			txRef, err := app.services.ConsentService.GrantConsent(cmd.Context(), subjectID, requestID, models.ConsentMethod(method), payload)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "tx: %s\n", txRef)
			return nil
		},
	}

	cmd.Flags().StringVar(&method, "method", string(models.MethodDirect), "consent method (direct|indirect)")
	cmd.Flags().StringVar(&material, "material", "", "key material or retrieval reference")
	cmd.Flags().StringVar(&materialFile, "material-file", "", "read the material from a file")
	return cmd
}

func newDeclineCommand(session func() *App) *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "decline <request-id>",
		Short: "Decline a request as target, or cancel it as requester",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := session()
			subjectID, err := app.subject()
			if err != nil {
				return err
			}
			requestID, err := parseRequestID(args[0])
			if err != nil {
				return err
			}

			txRef, err := app.services.ConsentService.DeclineRequest(cmd.Context(), subjectID, requestID, reason)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "tx: %s\n", txRef)
			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "reason recorded on the ledger")
	return cmd
}

func newListCommand(session func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the ids of every request involving the current identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := session()
			subjectID, err := app.subject()
			if err != nil {
				return err
			}

			ids, err := app.services.ConsentService.ListRequests(cmd.Context(), subjectID)
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}
