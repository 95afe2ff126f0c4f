package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"shade-storefront/config"
	"shade-storefront/internal/domain"
	"shade-storefront/internal/infrastructure/storage"
	"shade-storefront/pkg/logger"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

func snapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Show or clear a device's persisted snapshots",
	}
	cmd.AddCommand(snapshotShowCmd(), snapshotClearCmd())
	return cmd
}

func snapshotShowCmd() *cobra.Command {
	var deviceID string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the cart, wishlist and session snapshots of a device",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeviceStorage(cmd.Context(), deviceID, func(ctx context.Context, s domain.LocalStorage) error {
				return showSnapshots(ctx, s, cmd.OutOrStdout())
			})
		},
	}
	cmd.Flags().StringVar(&deviceID, "device", "", "device id")
	_ = cmd.MarkFlagRequired("device")
	return cmd
}

func snapshotClearCmd() *cobra.Command {
	var deviceID string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every snapshot of a device",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeviceStorage(cmd.Context(), deviceID, func(ctx context.Context, s domain.LocalStorage) error {
				if err := clearSnapshots(ctx, s); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "cleared snapshots of %s\n", deviceID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&deviceID, "device", "", "device id")
	_ = cmd.MarkFlagRequired("device")
	return cmd
}

func withDeviceStorage(ctx context.Context, deviceID string, fn func(context.Context, domain.LocalStorage) error) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := config.LoadConfig()
	logger.Init(cfg.Env, "warn")
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.StorageDriver == config.StorageMemory {
		return errors.New("the memory storage driver is private to the server process")
	}

	backend, closeStorage, err := storage.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s storage: %w", cfg.StorageDriver, err)
	}
	defer closeStorage()

	return fn(ctx, storage.NewNamespaced(backend, deviceID))
}

// showSnapshots writes each stored snapshot, indented, under its key.
func showSnapshots(ctx context.Context, s domain.LocalStorage, w io.Writer) error {
	for _, key := range domain.StorageKeys {
		raw, ok, err := s.GetItem(ctx, key)
		if err != nil {
			return fmt.Errorf("read %s: %w", key, err)
		}
		if !ok {
			fmt.Fprintf(w, "%s: (none)\n", key)
			continue
		}

		var out bytes.Buffer
		if err := json.Indent(&out, []byte(raw), "", "  "); err != nil {
			fmt.Fprintf(w, "%s: (malformed) %s\n", key, raw)
			continue
		}
		fmt.Fprintf(w, "%s:\n%s\n", key, out.String())
	}
	return nil
}

func clearSnapshots(ctx context.Context, s domain.LocalStorage) error {
	var errs []error
	for _, key := range domain.StorageKeys {
		if err := s.RemoveItem(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("remove %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}
