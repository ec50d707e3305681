package wa

import (
	"context"
	"errors"
	"fmt"
)

// ErrPairTimeout is returned when no QR code was scanned in time.
var ErrPairTimeout = errors.New("pairing timed out")

// Pair links this device by QR code. Each code WhatsApp issues is passed to
// onCode; Pair returns once the phone confirms, the codes run out or ctx is
// cancelled.
func (a *Adapter) Pair(ctx context.Context, onCode func(code string)) error {
	if a.IsLoggedIn() {
		return errors.New("already logged in")
	}
	qrChan, err := a.client.GetQRChannel(ctx)
	if err != nil {
		return fmt.Errorf("get QR channel: %w", err)
	}

	// Connect must be called after GetQRChannel.
	if err := a.Connect(); err != nil {
		return fmt.Errorf("connect: %w", err)
	}

	for item := range qrChan {
		switch item.Event {
		case "code":
			onCode(item.Code)
		case "success":
			a.logger.Info("device paired")
			return nil
		case "timeout":
			return ErrPairTimeout
		default:
			if item.Error != nil {
				return fmt.Errorf("pairing failed: %w", item.Error)
			}
			return fmt.Errorf("pairing failed: %s", item.Event)
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return ErrPairTimeout
}
