// Package importer runs a full import of one source directory into the
// business catalog.
//
// A run loads the existing catalog without the source's previous records,
// builds a record for every source row, drops rows that duplicate a record
// already in the catalog or accepted earlier in the run, and writes the kept
// records followed by the imported ones:
//
//	src, err := belarusinfo.Open("Info/belarusinfo.sqlite3")
//	if err != nil {
//		return err
//	}
//	defer src.Close()
//
//	report, err := importer.Run(ctx, src,
//		importer.WithExistingCatalog("data/companies.jsonl"),
//		importer.WithInPlace(true),
//		importer.WithBackup(true),
//	)
//
// Because the source's records are rebuilt from scratch every time, running
// the same import twice yields the same catalog.
package importer

import (
	"context"

	"github.com/google/uuid"

	"github.com/lucheestiy/bizcatalog/pkg/builder"
	"github.com/lucheestiy/bizcatalog/pkg/catalogs"
	"github.com/lucheestiy/bizcatalog/pkg/dedupe"
	"github.com/lucheestiy/bizcatalog/pkg/errors"
	"github.com/lucheestiy/bizcatalog/pkg/logging"
	"github.com/lucheestiy/bizcatalog/pkg/sources"
	"github.com/lucheestiy/bizcatalog/pkg/taxonomy"
)

// Run imports src into the configured catalog and returns the run report.
// Only setup failures are returned as errors; rows that cannot be imported
// are counted in the report.
func Run(ctx context.Context, src sources.Source, opts ...Option) (*Report, error) {
	if src == nil {
		return nil, errors.NewValidationError("source", nil, "cannot be nil")
	}
	o, err := defaultOptions().apply(opts...)
	if err != nil {
		return nil, err
	}

	report := newReport(uuid.NewString(), src.ID().String(), o.now())
	report.DryRun = o.dryRun
	report.OutputJSONL = o.destination()

	ctx = logging.WithRunID(ctx, report.RunID)
	ctx = logging.WithSource(ctx, report.Source)
	logger := logging.FromContext(ctx)

	snap, err := catalogs.Load(o.existingPath,
		catalogs.WithDroppedSource(src.ID().String()),
		catalogs.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	report.ExistingKept = len(snap.Companies)
	report.DroppedPrevious = snap.Dropped
	report.MalformedLines = snap.Malformed
	logger.Info().
		Str("path", o.existingPath).
		Int("kept", len(snap.Companies)).
		Int("dropped", snap.Dropped).
		Int("malformed", snap.Malformed).
		Int("categories", len(snap.Index.Categories)).
		Int("rubrics", len(snap.Index.Rubrics)).
		Msg("loaded existing catalog")

	mapper := taxonomy.NewMapper(snap.Index)
	build := builder.New(src.ID(), mapper)
	seen := dedupe.NewIndex(snap.Companies)

	var imported []*catalogs.Company
	err = src.Each(ctx, func(row sources.Row) error {
		report.ProcessedDoneRows++
		if o.maxCompanies > 0 && len(imported) >= o.maxCompanies {
			return sources.ErrStop
		}

		c, reason, ok := build.Build(row)
		if !ok {
			report.addSkipped(reason)
			logger.Debug().Int64("row_id", row.ID).Str("reason", string(reason)).Msg("skipped row")
			return nil
		}
		if dup, accepted := seen.Admit(c); !accepted {
			report.addDuplicate(dup)
			logger.Debug().Int64("row_id", row.ID).Str("reason", string(dup)).Msg("duplicate row")
			return nil
		}
		imported = append(imported, c)
		return nil
	})
	if err != nil {
		return nil, errors.WrapResource("import", "source", src.ID().String(), err)
	}

	report.Imported = len(imported)
	report.setRubrics(mapper.Counts())
	report.Finalize(o.now())
	logger.Info().
		Int("imported", report.Imported).
		Int("processed", report.ProcessedDoneRows).
		Interface("duplicates", report.Duplicates).
		Interface("skipped", report.Skipped).
		Int("total", report.CombinedTotal).
		Msg("import finished")

	if o.dryRun {
		return report, nil
	}

	if o.inPlace && o.backup {
		path, err := catalogs.Backup(o.existingPath, o.now())
		if err != nil {
			return nil, err
		}
		report.BackupPath = path
		logger.Info().Str("from", o.existingPath).Str("to", path).Msg("backed up catalog")
	}

	dst := o.destination()
	if err := catalogs.Write(dst, snap.Companies, imported); err != nil {
		return nil, err
	}
	report.Written = true
	logger.Info().Str("path", dst).Int("records", report.CombinedTotal).Msg("wrote catalog")
	return report, nil
}
