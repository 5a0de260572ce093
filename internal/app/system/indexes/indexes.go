// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	var problems []string

	if err := ensureMembers(ctx, db, logger); err != nil {
		problems = append(problems, "members: "+err.Error())
	}
	if err := ensureSubmissions(ctx, db, logger); err != nil {
		problems = append(problems, "submissions: "+err.Error())
	}
	if err := ensureReports(ctx, db, logger); err != nil {
		problems = append(problems, "reports: "+err.Error())
	}
	if err := ensureEvents(ctx, db, logger); err != nil {
		problems = append(problems, "events: "+err.Error())
	}
	if err := ensureDocuments(ctx, db, logger); err != nil {
		problems = append(problems, "documents: "+err.Error())
	}
	if err := ensureProgress(ctx, db, logger); err != nil {
		problems = append(problems, "progress: "+err.Error())
	}
	if err := ensureMonthlyWinners(ctx, db, logger); err != nil {
		problems = append(problems, "monthly_winners: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureMembers(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	return ensureIndexSet(ctx, db.Collection("members"), logger, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("email_unique").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "points", Value: -1}},
			Options: options.Index().SetName("points_desc"),
		},
		{
			Keys:    bson.D{{Key: "join_year", Value: -1}},
			Options: options.Index().SetName("join_year_desc"),
		},
	})
}

func ensureSubmissions(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	return ensureIndexSet(ctx, db.Collection("submissions"), logger, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index().SetName("status"),
		},
		{
			Keys:    bson.D{{Key: "member_id", Value: 1}},
			Options: options.Index().SetName("member_id"),
		},
		{
			Keys:    bson.D{{Key: "submitted_at", Value: -1}},
			Options: options.Index().SetName("submitted_at_desc"),
		},
	})
}

func ensureReports(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	return ensureIndexSet(ctx, db.Collection("reports"), logger, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index().SetName("status"),
		},
		{
			Keys:    bson.D{{Key: "reporter_id", Value: 1}},
			Options: options.Index().SetName("reporter_id"),
		},
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("created_at_desc"),
		},
	})
}

func ensureEvents(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	return ensureIndexSet(ctx, db.Collection("events"), logger, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "date", Value: 1}},
			Options: options.Index().SetName("date"),
		},
		{
			Keys:    bson.D{{Key: "year", Value: -1}},
			Options: options.Index().SetName("year_desc"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index().SetName("status"),
		},
		{
			Keys:    bson.D{{Key: "type", Value: 1}},
			Options: options.Index().SetName("type"),
		},
	})
}

func ensureDocuments(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	return ensureIndexSet(ctx, db.Collection("documents"), logger, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "year", Value: -1}, {Key: "upload_date", Value: -1}},
			Options: options.Index().SetName("year_upload_date_desc"),
		},
		{
			Keys:    bson.D{{Key: "category", Value: 1}},
			Options: options.Index().SetName("category"),
		},
	})
}

func ensureProgress(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	return ensureIndexSet(ctx, db.Collection("progress"), logger, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "year", Value: -1}, {Key: "month", Value: -1}},
			Options: options.Index().SetName("year_month_desc"),
		},
	})
}

func ensureMonthlyWinners(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	return ensureIndexSet(ctx, db.Collection("monthly_winners"), logger, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "year", Value: -1}, {Key: "month", Value: -1}},
			Options: options.Index().SetName("year_month_unique").SetUnique(true),
		},
	})
}

// ensureIndexSet creates each desired index, tolerating indexes that
// already exist with the same keys. A unique index that cannot be built
// because duplicates are present is reported with a finder hint.
func ensureIndexSet(ctx context.Context, coll *mongo.Collection, logger *zap.Logger, models []mongo.IndexModel) error {
	var errs []string

	for _, m := range models {
		name := ""
		unique := false
		if m.Options != nil {
			if m.Options.Name != nil {
				name = *m.Options.Name
			}
			if m.Options.Unique != nil {
				unique = *m.Options.Unique
			}
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			if isAlreadyExistsErr(err) {
				logger.Info("reusing existing index",
					zap.String("collection", coll.Name()),
					zap.String("name", name))
				continue
			}
			if unique && isDuplicateKeyErr(err) {
				errs = append(errs, fmt.Sprintf(
					"%s(%s): cannot create unique index, duplicates present — find them with "+
						`db.%s.aggregate([{$group:{_id:"$%s",n:{$sum:1}}},{$match:{n:{$gt:1}}}])`,
					coll.Name(), name, coll.Name(), firstKey(m)))
				continue
			}
			errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), name, err))
			continue
		}

		logger.Info("index ensured",
			zap.String("collection", coll.Name()),
			zap.String("name", name),
			zap.Bool("unique", unique))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func firstKey(m mongo.IndexModel) string {
	if keys, ok := m.Keys.(bson.D); ok && len(keys) > 0 {
		return keys[0].Key
	}
	return ""
}

// Best-effort duplicate-detector (works cross-vendors)
func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 { // E11000 duplicate key error index
				return true
			}
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 11000 {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "E11000") || strings.Contains(strings.ToLower(s), "duplicate key")
}

// Mongo/DocDB may return IndexOptionsConflict or IndexKeySpecsConflict
// when an equivalent index already exists under another name.
func isAlreadyExistsErr(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "IndexOptionsConflict") ||
		strings.Contains(s, "IndexKeySpecsConflict") ||
		strings.Contains(s, "already exists")
}
