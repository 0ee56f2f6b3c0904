package cli

import (
	"context"
	"fmt"
	"sort"
	"strconv"
)

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// parseQuantity parses a positive quantity argument
func parseQuantity(arg string) (float64, error) {
	quantity, err := strconv.ParseFloat(arg, 64)
	if err != nil || quantity <= 0 {
		return 0, fmt.Errorf("invalid quantity %q: must be a positive number", arg)
	}
	return quantity, nil
}

// saveAfter runs change and saves the session when it succeeds
func saveAfter(ctx context.Context, s *session, change func() error) error {
	if err := change(); err != nil {
		return err
	}
	if _, err := s.save(ctx); err != nil {
		return fmt.Errorf("change applied but not saved: %w", err)
	}
	return nil
}
