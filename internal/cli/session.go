package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newSessionCmd() *cobra.Command {
	sessionCmd := &cobra.Command{
		Use:   "session",
		Short: "Host-side session operations",
	}

	sessionCmd.AddCommand(newSessionCreateCmd())
	sessionCmd.AddCommand(newSessionCloseCmd())
	sessionCmd.AddCommand(newSessionSnapshotCmd())
	sessionCmd.AddCommand(newSessionRestoreHostCmd())
	sessionCmd.AddCommand(newSessionRestorePlayerCmd())

	return sessionCmd
}

func newSessionCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create a new session and store the host identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Session
			if err := client.Post("/api/v1/sessions", nil, &result); err != nil {
				return err
			}

			if err := cfg.SaveIdentity(Identity{
				SessionID: result.SessionID,
				Code:      result.Code,
				HostToken: result.HostToken,
			}); err != nil {
				return fmt.Errorf("failed to save identity: %w", err)
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newSessionCloseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "close",
		Short: "Close the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Identity.SessionID == "" || cfg.Identity.HostToken == "" {
				return errors.New("no stored host identity; run 'wordvote session create' first")
			}

			body := map[string]string{"host_token": cfg.Identity.HostToken}
			var result OKResult
			if err := client.Post("/api/v1/sessions/"+cfg.Identity.SessionID+"/close", body, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage("Session closed")
			return nil
		},
	}
}

func newSessionSnapshotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot [code]",
		Short: "Read the current state of a session",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := cfg.Identity.Code
			if len(args) > 0 {
				code = args[0]
			}
			if code == "" {
				return errors.New("no session code given and none stored")
			}

			var result Snapshot
			if err := client.Get("/api/v1/sessions/"+code, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newSessionRestoreHostCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore-host",
		Short: "Re-validate the stored host identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Identity.SessionID == "" || cfg.Identity.HostToken == "" {
				return errors.New("no stored host identity")
			}

			body := map[string]string{"host_token": cfg.Identity.HostToken}
			var result RestoreHost
			if err := client.Post("/api/v1/sessions/"+cfg.Identity.SessionID+"/restore-host", body, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newSessionRestorePlayerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore-player",
		Short: "Re-validate the stored player identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Identity.SessionID == "" || cfg.Identity.PlayerID == "" {
				return errors.New("no stored player identity; run 'wordvote join' first")
			}

			body := map[string]string{
				"player_id":    cfg.Identity.PlayerID,
				"player_token": cfg.Identity.PlayerToken,
			}
			var result RestorePlayer
			if err := client.Post("/api/v1/sessions/"+cfg.Identity.SessionID+"/restore-player", body, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}
