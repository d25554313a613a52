package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/desertthunder/listmerge/internal/formatter"
	"github.com/desertthunder/listmerge/internal/repositories"
	"github.com/desertthunder/listmerge/internal/shared"
	"github.com/urfave/cli/v3"
)

// HistoryList prints the most recent merges.
func (r *Runner) HistoryList(ctx context.Context, cmd *cli.Command) error {
	repo, closeFn, err := r.openRepository()
	if err != nil {
		return err
	}
	defer closeFn()

	records, err := repo.List(int(cmd.Int("limit")))
	if err != nil {
		return fmt.Errorf("failed to list merges: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(records, cmd.Bool("pretty"))
	}

	if len(records) == 0 {
		return r.writePlain("No merges recorded yet.\n")
	}
	for _, rec := range records {
		r.writePlain("%s\n", formatter.MergeSummary(rec))
	}
	return nil
}

// HistoryShow prints one merge with its items.
func (r *Runner) HistoryShow(ctx context.Context, cmd *cli.Command) error {
	seq, err := sequenceArg(cmd)
	if err != nil {
		return err
	}

	repo, closeFn, err := r.openRepository()
	if err != nil {
		return err
	}
	defer closeFn()

	rec, err := repo.GetBySequence(seq)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(rec, true)
	}
	return r.writePlain("%s", formatter.MergeDetail(rec))
}

// HistoryDelete removes one merge from the journal.
func (r *Runner) HistoryDelete(ctx context.Context, cmd *cli.Command) error {
	seq, err := sequenceArg(cmd)
	if err != nil {
		return err
	}

	repo, closeFn, err := r.openRepository()
	if err != nil {
		return err
	}
	defer closeFn()

	rec, err := repo.GetBySequence(seq)
	if err != nil {
		return err
	}
	if err := repo.Delete(rec.ID()); err != nil {
		return fmt.Errorf("failed to delete merge: %w", err)
	}

	r.logger.Info("merge deleted", "sequence", seq, "id", rec.ID())
	return r.writePlain("✓ Deleted merge #%d\n", seq)
}

func sequenceArg(cmd *cli.Command) (int, error) {
	raw := cmd.StringArg("sequence")
	if raw == "" {
		return 0, fmt.Errorf("%w: sequence", shared.ErrMissingArgument)
	}
	seq, err := strconv.Atoi(raw)
	if err != nil || seq < 1 {
		return 0, fmt.Errorf("%w: sequence must be a positive integer, got %q", shared.ErrInvalidArgument, raw)
	}
	return seq, nil
}

func (r *Runner) openRepository() (*repositories.MergeRepository, func(), error) {
	db, err := shared.OpenJournal(r.config.Database)
	if err != nil {
		if errors.Is(err, shared.ErrDatabaseDisabled) {
			return nil, nil, fmt.Errorf("%w: set database.enabled = true in %s", err, r.configPath)
		}
		return nil, nil, fmt.Errorf("failed to open merge journal: %w", err)
	}
	return repositories.NewMergeRepository(db), func() { db.Close() }, nil
}
