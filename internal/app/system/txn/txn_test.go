package txn_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dalemusser/chapterhub/internal/app/system/txn"
	"github.com/dalemusser/chapterhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Run backs the approval engine: the submission status stamp and the
// member point credit go through one callback so both land together.
func TestRun_AppliesReviewWritePair(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	member := fixtures.CreateMember(ctx, "Ana", "ana@test.com", 10)
	sub := fixtures.CreateSubmission(ctx, member, "Organized fall meetup", "event", 10)

	err := txn.Run(ctx, db.Client(), zap.NewNop(), func(ctx context.Context) error {
		if _, err := db.Collection("submissions").UpdateByID(ctx, sub.ID,
			bson.M{"$set": bson.M{"status": "approved"}}); err != nil {
			return err
		}
		_, err := db.Collection("members").UpdateByID(ctx, member.ID,
			bson.M{"$inc": bson.M{"points": 10}})
		return err
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	var gotSub struct {
		Status string `bson:"status"`
	}
	if err := db.Collection("submissions").FindOne(ctx, bson.M{"_id": sub.ID}).Decode(&gotSub); err != nil {
		t.Fatalf("load submission: %v", err)
	}
	if gotSub.Status != "approved" {
		t.Errorf("submission status: got %q, want approved", gotSub.Status)
	}

	var gotMember struct {
		Points int `bson:"points"`
	}
	if err := db.Collection("members").FindOne(ctx, bson.M{"_id": member.ID}).Decode(&gotMember); err != nil {
		t.Fatalf("load member: %v", err)
	}
	if gotMember.Points != 20 {
		t.Errorf("member points: got %d, want 20", gotMember.Points)
	}
}

func TestRun_PropagatesCallbackError(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	wantErr := errors.New("credit failed")
	err := txn.Run(ctx, db.Client(), zap.NewNop(), func(context.Context) error {
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("got %v, want the callback error", err)
	}
}

func TestIsNotSupported(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"unrelated error", errors.New("connection reset"), false},
		{"illegal operation code", mongo.CommandError{Code: 20, Message: "Transaction numbers are only allowed on a replica set member"}, true},
		{"command not supported code", mongo.CommandError{Code: 51, Message: "Illegal operation"}, true},
		{"operation not supported code", mongo.CommandError{Code: 263, Message: "Cannot run in a multi-document transaction"}, true},
		{"other command error", mongo.CommandError{Code: 11000, Message: "duplicate key"}, false},
		{"standalone message", errors.New("transaction failed because this is not a replica set member"), true},
		{"sessions unsupported message", errors.New("session operations are not supported on this server"), true},
		{"transient transaction error", errors.New("transaction failed"), false},
		{"mixed case", errors.New("Transaction Session error"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := txn.IsNotSupported(tt.err); got != tt.want {
				t.Errorf("IsNotSupported(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
