package client

import (
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-gene-consent/models"
)

func printRequest(w io.Writer, req models.AnalysisRequest) {
	fmt.Fprintf(w, "%d\t%s\t%s -> %s", req.RequestID, req.Status, req.Requester.Hex(), req.Target.Hex())
	switch {
	case req.ResultRef != "":
		fmt.Fprintf(w, "\tresult=%s", req.ResultRef)
	case req.FailureReason != "":
		fmt.Fprintf(w, "\treason=%s", req.FailureReason)
	}
	fmt.Fprintln(w)
}

func newStatusCommand(session func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status <request-id>",
		Short: "Show a request, falling back to the local cache when the ledger is down",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			requestID, err := parseRequestID(args[0])
			if err != nil {
				return err
			}

			req, err := session().services.Coordinator.Get(cmd.Context(), requestID)
			if err != nil {
				return err
			}
			printRequest(cmd.OutOrStdout(), req)
			return nil
		},
	}
}

func newPendingCommand(session func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "pending",
		Short: "List pending requests awaiting the current identity's consent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := session()
			subjectID, err := app.subject()
			if err != nil {
				return err
			}

			reqs, err := app.services.Coordinator.Pending(cmd.Context(), subjectID)
			if err != nil {
				return err
			}
			for _, req := range reqs {
				printRequest(cmd.OutOrStdout(), req)
			}
			return nil
		},
	}
}

func newReconcileCommand(session func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Sync every request of the current identity with the ledger and expire stale ones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := session()
			subjectID, err := app.subject()
			if err != nil {
				return err
			}

			reqs, err := app.services.Coordinator.Reconcile(cmd.Context(), subjectID)
			if err != nil {
				return err
			}
			for _, req := range reqs {
				printRequest(cmd.OutOrStdout(), req)
			}
			return nil
		},
	}
}

func newWatchCommand(session func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Reconcile periodically and dispatch consented requests until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
			defer stop()

			return session().Watch(ctx)
		},
	}
}

func newDispatchCommand(session func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dispatch <request-id>",
		Short: "Hand a consented request to the analysis engine",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			requestID, err := parseRequestID(args[0])
			if err != nil {
				return err
			}

			if err = session().services.Coordinator.Dispatch(cmd.Context(), requestID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "dispatched %d\n", requestID)
			return nil
		},
	}
}

func newReportCommand(session func() *App) *cobra.Command {
	var resultRef, engineErr string

	cmd := &cobra.Command{
		Use:   "report <request-id>",
		Short: "Record the analysis engine outcome of a consented request",
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
			if (resultRef == "") == (engineErr == "") {
				return errInvalidReport
			}

			txRef, err := app.services.Coordinator.ReportResult(cmd.Context(), subjectID, models.AnalysisReport{
				RequestID: requestID,
				ResultRef: resultRef,
				Error:     engineErr,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "tx: %s\n", txRef)
			return nil
		},
	}

	cmd.Flags().StringVar(&resultRef, "result-ref", "", "reference to the computed result")
	cmd.Flags().StringVar(&engineErr, "error", "", "engine error message; fails the request")
	return cmd
}

func newResultCommand(session func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "result <request-id>",
		Short: "Print the result reference of a completed request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			requestID, err := parseRequestID(args[0])
			if err != nil {
				return err
			}

			ref, err := session().services.Coordinator.Result(cmd.Context(), requestID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ref)
			return nil
		},
	}
}
