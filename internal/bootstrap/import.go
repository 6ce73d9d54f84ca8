package bootstrap

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/wolfeidau/gatehouse/internal/models"
)

// ImportUsers creates one account per record in the batch file at path.
// It refuses to run unless the Seeder was built with Debug set. A record that
// fails validation is skipped and an unexpected persistence error is reported;
// neither stops the batch.
func (s *Seeder) ImportUsers(ctx context.Context, path string) (BatchResult, error) {
	var result BatchResult

	if !s.debug {
		s.reporter.Errorf("This command can only be run in DEBUG mode")
		return result, ErrDebugRequired
	}

	records, err := loadRecords(path)
	if err != nil {
		s.reporter.Errorf("%s", err)
		return result, err
	}

	start := time.Now()
	field := s.creator.LoginField()

	for i, raw := range records {
		rec, err := decodeRecord(raw)
		if err != nil {
			s.reporter.Warningf("Skipping user: %s", err)
			s.recordSkip(ctx, err)
			result.Skipped++
			continue
		}

		login := rec.Login(field)

		var account *models.Account
		if rec.IsSuperuser {
			account, err = s.creator.CreateSuperuser(ctx, rec)
		} else {
			account, err = s.creator.CreateUser(ctx, rec)
		}

		switch {
		case err == nil:
			s.recordCreated(ctx, account)
			result.Created++
			if account.IsSuperuser {
				s.reporter.Successf("Superuser %q created successfully", account.LoginValue(field))
			} else {
				s.reporter.Successf("User %q created successfully", account.LoginValue(field))
			}
		case isRejection(err):
			s.reporter.Warningf("Skipping user: %s", err)
			s.recordSkip(ctx, err)
			result.Skipped++
		default:
			s.reporter.Errorf("Error creating user %s: %s", login, err)
			s.metrics.AccountCreateErrorsTotal.Add(ctx, 1)
			log.Error().Err(err).Int("record", i).Msg("Account import failed")
			result.Failed++
		}
	}

	s.metrics.BatchImportDuration.Record(ctx, float64(time.Since(start).Milliseconds()))

	log.Info().
		Str("path", path).
		Int("created", result.Created).
		Int("skipped", result.Skipped).
		Int("failed", result.Failed).
		Msg("Account import finished")

	return result, nil
}
