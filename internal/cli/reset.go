package cli

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/terraincognita07/moments/internal/kv"
	"github.com/terraincognita07/moments/internal/services"
)

var ErrUnknownResetTarget = errors.New("unknown reset target")

var resetTargets = map[string][]string{
	"notifications": {services.LocalNotificationsKey, services.NotificationTriggersKey},
	"planned":       {services.PlannedMomentsKey},
	"photos":        {services.PhotoMomentsKey},
	"profile":       {services.ProfileKey},
}

// ResetTargets lists the names accepted by RunResetCommand, "all" last.
func ResetTargets() []string {
	names := make([]string, 0, len(resetTargets)+1)
	for name := range resetTargets {
		names = append(names, name)
	}
	sort.Strings(names)
	return append(names, "all")
}

// RunResetCommand removes the durable keys behind target. Removing a key that
// was never written is not an error.
func RunResetCommand(store kv.Store, target string, out io.Writer) error {
	keys, err := resetKeys(target)
	if err != nil {
		return err
	}

	for _, key := range keys {
		if err := store.Remove(key); err != nil {
			return fmt.Errorf("remove %s: %w", key, err)
		}
		fmt.Fprintf(out, "removed %s\n", key)
	}
	fmt.Fprintf(out, "✅ Reset %s complete\n", strings.ToLower(strings.TrimSpace(target)))
	return nil
}

func resetKeys(target string) ([]string, error) {
	normalized := strings.ToLower(strings.TrimSpace(target))
	if normalized == "all" {
		keys := make([]string, 0)
		for _, name := range ResetTargets() {
			keys = append(keys, resetTargets[name]...)
		}
		return keys, nil
	}

	keys, ok := resetTargets[normalized]
	if !ok {
		return nil, fmt.Errorf("%w %q (expected one of %s)", ErrUnknownResetTarget, target, strings.Join(ResetTargets(), ", "))
	}
	return keys, nil
}
