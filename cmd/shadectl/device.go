package main

import (
	"fmt"

	"shade-storefront/config"
	"shade-storefront/pkg/utils"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func deviceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "device",
		Short: "Device identity helpers",
	}
	cmd.AddCommand(deviceTokenCmd())
	return cmd
}

// deviceTokenCmd mints a device cookie value, handy for driving the API
// with curl as a known device.
func deviceTokenCmd() *cobra.Command {
	var deviceID string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a device token signed with DEVICE_TOKEN_SECRET",
		RunE: func(cmd *cobra.Command, args []string) error {
			if deviceID == "" {
				deviceID = utils.NewDeviceID()
			} else if _, err := uuid.Parse(deviceID); err != nil {
				return fmt.Errorf("device id must be a UUID: %w", err)
			}

			cfg := config.LoadConfig()
			tokens := utils.NewDeviceTokens(cfg.DeviceTokenSecret, cfg.DeviceTokenExpiry)
			signed, err := tokens.Issue(deviceID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "device: %s\ntoken:  %s\n", deviceID, signed)
			return nil
		},
	}
	cmd.Flags().StringVar(&deviceID, "device", "", "device id (default: a new one)")
	return cmd
}
