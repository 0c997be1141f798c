package cli

import (
	"context"
	"fmt"
	"strconv"
)

// delete removes credentials matching the optional pattern. With several
// matches the user picks one by its table index, or "a" to delete them
// all. Matches are numbered by their position in the vault listing, so
// duplicates of the same service stay distinguishable.
func (a *App) delete(ctx context.Context, args []string) error {
	pattern := ""
	if len(args) > 0 {
		pattern = args[0]
	}

	matches, err := a.vault.Search(ctx, nil, pattern)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		fmt.Fprintln(a.out, "No matches.")
		return nil
	}

	a.printTable(matches, false)

	position := 0
	if len(matches) > 1 {
		answer, err := getSimpleText(a.reader, "Enter # to delete, or 'a' for all", a.out)
		if err != nil {
			return err
		}
		if answer == "a" {
			position = -1
		} else {
			position, err = strconv.Atoi(answer)
			if err != nil || position < 0 || position >= len(matches) {
				return fmt.Errorf("invalid selection: %s", answer)
			}
		}
	} else {
		answer, err := getSimpleText(a.reader, "Delete this credential? (y/n)", a.out)
		if err != nil {
			return err
		}
		if answer != "y" {
			fmt.Fprintln(a.out, "Cancelled.")
			return nil
		}
	}

	if err := a.vault.Delete(ctx, pattern, position); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Deleted.")
	return nil
}
