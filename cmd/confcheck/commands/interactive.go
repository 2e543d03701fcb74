package commands

import (
	"slices"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/thoreinstein/confcheck/internal/configuration"
	"github.com/thoreinstein/confcheck/internal/errors"
)

// pickMulti lets the user mark entries of items and returns their indices.
// Tests replace it.
var pickMulti = func(header string, items []string) ([]int, error) {
	return fuzzyfinder.FindMulti(
		items,
		func(i int) string { return items[i] },
		fuzzyfinder.WithHeader(header),
	)
}

// selectPairs asks for the contexts and types to validate, offering the
// given candidates.
func selectPairs(contexts []configuration.Context, types []configuration.Type) ([]configuration.Context, []configuration.Type, error) {
	pickedContexts, err := pick("Contexts (Tab to mark, Enter to confirm)", contexts)
	if err != nil {
		return nil, nil, err
	}
	pickedTypes, err := pick("Configuration types (Tab to mark, Enter to confirm)", types)
	if err != nil {
		return nil, nil, err
	}
	return pickedContexts, pickedTypes, nil
}

func pick[T ~string](header string, candidates []T) ([]T, error) {
	items := make([]string, len(candidates))
	for i, c := range candidates {
		items[i] = string(c)
	}

	idx, err := pickMulti(header, items)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil, errors.NewUserError(errors.New("selection aborted"), "")
		}
		return nil, errors.Wrap(err, "interactive selection failed")
	}
	if len(idx) == 0 {
		return nil, errors.NewUserError(errors.New("nothing selected"), "Mark entries with Tab")
	}

	// Keep candidate order regardless of marking order.
	slices.Sort(idx)
	out := make([]T, 0, len(idx))
	for _, i := range idx {
		out = append(out, candidates[i])
	}
	return out, nil
}
