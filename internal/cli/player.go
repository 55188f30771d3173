package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <code> <name>",
		Short: "Join a session and store the player identity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]string{
				"code": args[0],
				"name": args[1],
			}

			var result Join
			if err := client.Post("/api/v1/sessions/join", body, &result); err != nil {
				return err
			}

			if err := cfg.SaveIdentity(Identity{
				SessionID:   result.SessionID,
				Code:        args[0],
				PlayerID:    result.PlayerID,
				PlayerToken: result.PlayerToken,
				Name:        result.Name,
			}); err != nil {
				return fmt.Errorf("failed to save identity: %w", err)
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newSubmitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "submit <word>",
		Short: "Submit a word as the stored player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Identity.SessionID == "" || cfg.Identity.PlayerID == "" {
				return errors.New("no stored player identity; run 'wordvote join' first")
			}

			body := map[string]string{
				"player_id":    cfg.Identity.PlayerID,
				"player_token": cfg.Identity.PlayerToken,
				"word":         args[0],
			}

			var result OKResult
			if err := client.Post("/api/v1/sessions/"+cfg.Identity.SessionID+"/words", body, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage("Word submitted")
			return nil
		},
	}
}
